package balance

import (
	"fmt"
	"io"
)

// SuccessMessage is printed for a balanced file when success reporting is on.
const SuccessMessage = "No syntax errors found."

// Report writes the human-readable diagnostic for r. A balanced result
// writes nothing.
func (r Result) Report(w io.Writer) error {
	var err error
	switch r.Kind {
	case UnmatchedCloser:
		_, err = fmt.Fprintf(w, "Error: Unexpected '%c' at line %d\n", r.Found, r.Line)
	case Mismatch:
		_, err = fmt.Fprintf(w, "Error: Mismatch at line %d. Found '%c', expected '%c' (opened at line %d)\n",
			r.Line, r.Found, r.Expected, r.Opener.Line)
	case Unclosed:
		if _, err = fmt.Fprintln(w, "Error: Unclosed tags/braces at end of file:"); err != nil {
			return err
		}
		for _, rec := range r.Pending {
			if _, err = fmt.Fprintf(w, "  '%c' opened at line %d\n", rec.Char, rec.Line); err != nil {
				return err
			}
		}
	}
	return err
}
