// Package balance checks that curly braces and parentheses in a text file
// pair up and nest correctly.
//
// The scan is character-level. Brackets inside string literals, comments or
// markup attributes count the same as any other, so those can produce false
// positives.
package balance

// Record is an opening bracket still waiting for its closer.
type Record struct {
	Char rune
	Line int
}

// Stack holds open records, outermost at the bottom.
type Stack struct {
	records []Record
}

// Push adds r as the innermost open record.
func (s *Stack) Push(r Record) {
	s.records = append(s.records, r)
}

// Pop removes and returns the innermost record.
// ok is false when the stack is empty.
func (s *Stack) Pop() (r Record, ok bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	last := len(s.records) - 1
	r = s.records[last]
	s.records = s.records[:last]
	return r, true
}

// Len returns the number of open records.
func (s *Stack) Len() int {
	return len(s.records)
}

// Drain empties the stack and returns its records innermost first.
func (s *Stack) Drain() []Record {
	out := make([]Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	s.records = nil
	return out
}

func isOpener(c rune) bool {
	return c == '{' || c == '('
}

func isCloser(c rune) bool {
	return c == '}' || c == ')'
}

// closerFor returns the closing bracket expected for opener.
func closerFor(opener rune) rune {
	if opener == '{' {
		return '}'
	}
	return ')'
}
