package balance

// Kind classifies the outcome of a scan.
type Kind int

const (
	// Balanced means every opener was closed by the right closer.
	Balanced Kind = iota
	// UnmatchedCloser means a closer appeared with nothing open.
	UnmatchedCloser
	// Mismatch means a closer did not match the innermost opener.
	Mismatch
	// Unclosed means the input ended with openers still pending.
	Unclosed
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Balanced:
		return "balanced"
	case UnmatchedCloser:
		return "unmatched-closer"
	case Mismatch:
		return "mismatch"
	case Unclosed:
		return "unclosed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one scan.
type Result struct {
	Kind Kind

	// Found and Line locate the offending closer (UnmatchedCloser, Mismatch).
	Found rune
	Line  int

	// Opener is the record popped by a Mismatch, Expected its closer.
	Opener   Record
	Expected rune

	// Pending lists the records left open at end of input, innermost first.
	Pending []Record
}

// OK reports whether the scan found no problem.
func (r Result) OK() bool {
	return r.Kind == Balanced
}

// Scan walks lines top to bottom, left to right, and stops at the first
// unmatched or mismatched closer. Line numbers in the result are 1-indexed.
func Scan(lines []string) Result {
	var stack Stack

	for i, line := range lines {
		lineNum := i + 1
		for _, c := range line {
			switch {
			case isOpener(c):
				stack.Push(Record{Char: c, Line: lineNum})
			case isCloser(c):
				opener, ok := stack.Pop()
				if !ok {
					return Result{Kind: UnmatchedCloser, Found: c, Line: lineNum}
				}
				if expected := closerFor(opener.Char); c != expected {
					return Result{
						Kind:     Mismatch,
						Found:    c,
						Line:     lineNum,
						Opener:   opener,
						Expected: expected,
					}
				}
			}
		}
	}

	if stack.Len() > 0 {
		return Result{Kind: Unclosed, Pending: stack.Drain()}
	}
	return Result{Kind: Balanced}
}
