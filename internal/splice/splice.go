// Package splice replaces an inclusive range of lines in a file with the
// lines of another file.
package splice

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRange is returned when start < 1 or start > end+1.
	ErrMalformedRange = errors.New("malformed line range")
	// ErrRangeOutOfBounds is returned in strict mode when the chunk reaches
	// past the end of the target.
	ErrRangeOutOfBounds = errors.New("line range out of bounds")
)

// Chunk is an inclusive, 1-indexed range of lines. End may be Start-1 to
// insert before Start without removing anything.
type Chunk struct {
	Start int
	End   int
}

func (c Chunk) String() string {
	return fmt.Sprintf("%d-%d", c.Start, c.End)
}

// Validate rejects ranges that are not merely out of bounds but nonsensical.
func (c Chunk) Validate() error {
	if c.Start < 1 {
		return fmt.Errorf("%w: start line %d must be >= 1", ErrMalformedRange, c.Start)
	}
	if c.Start > c.End+1 {
		return fmt.Errorf("%w: start line %d is after end line %d", ErrMalformedRange, c.Start, c.End)
	}
	return nil
}

// Fits reports whether the chunk lies within a target of n lines.
func (c Chunk) Fits(n int) bool {
	return c.Start-1 <= n && c.End <= n
}

// Splice returns target[:start-1] + replacement + target[end:], with both
// cut points clamped to len(target). truncated reports whether clamping
// happened. The chunk must already be valid.
func Splice(target, replacement []string, c Chunk) (out []string, truncated bool) {
	n := len(target)
	before := min(c.Start-1, n)
	after := min(c.End, n)
	truncated = !c.Fits(n)

	out = make([]string, 0, before+len(replacement)+n-after)
	out = append(out, target[:before]...)
	out = append(out, replacement...)
	out = append(out, target[after:]...)
	return out, truncated
}
