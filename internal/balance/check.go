package balance

import (
	"io"

	"github.com/harrison/linekit/internal/fileutil"
)

// CheckFile reads path and scans it. Read and decode failures come back as
// *FileAccessError.
func CheckFile(path string) (Result, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return Result{}, &FileAccessError{Path: path, Op: "read", Err: err}
	}
	return Scan(lines), nil
}

// Check scans path and writes its diagnostic to w. A balanced file produces
// no output.
func Check(path string, w io.Writer) error {
	result, err := CheckFile(path)
	if err != nil {
		return err
	}
	return result.Report(w)
}
