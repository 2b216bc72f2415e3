package fileutil

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a file's contents are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ReadLines reads the whole file at path and splits it into lines.
// Each line keeps its trailing "\n" except possibly the last one.
// An empty file yields no lines. Errors do not repeat path; callers attach it.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits s after every "\n".
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	// SplitAfter leaves an empty element when s ends with a newline
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines concatenates lines back into file contents.
func JoinLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
	}
	return []byte(b.String())
}
