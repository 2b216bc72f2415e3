// Package display formats user-facing warnings for the linekit CLI.
//
//	display.Warning{
//	    Title:      "Range truncated",
//	    Message:    "lines 1001-1028 extend past the end of pages/Profile.tsx (990 lines)",
//	    Files:      []string{"pages/Profile.tsx"},
//	    Suggestion: "Pass --strict to refuse out-of-range chunks",
//	}.Display(os.Stderr)
//
// Output is yellow only when the writer is a terminal, so redirected and
// captured output stays plain text.
package display
