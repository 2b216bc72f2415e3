package balance

import (
	"errors"
	"fmt"
)

// ErrImbalanced is returned by callers that turn a failed check into an error.
var ErrImbalanced = errors.New("brackets are not balanced")

// FileAccessError reports a file that could not be read, written or decoded.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
