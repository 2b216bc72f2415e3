package splice

import (
	"context"
	"fmt"
	"io"

	"github.com/harrison/linekit/internal/balance"
	"github.com/harrison/linekit/internal/fileutil"
	"github.com/harrison/linekit/internal/filelock"
)

// Logger receives progress messages from a Replacer.
type Logger interface {
	LogDebug(message string)
}

// Outcome describes a completed replacement.
type Outcome struct {
	TargetPath      string
	ReplacementPath string
	Chunk           Chunk
	LinesBefore     int
	LinesAfter      int
	Truncated       bool
}

// Replacer overwrites line ranges of target files.
type Replacer struct {
	// Strict turns out-of-bounds chunks into ErrRangeOutOfBounds instead of
	// clamping them.
	Strict bool

	out    io.Writer
	logger Logger
}

// NewReplacer creates a Replacer that prints its success line to out.
// logger may be nil.
func NewReplacer(out io.Writer, logger Logger) *Replacer {
	return &Replacer{out: out, logger: logger}
}

// Replace swaps lines chunk.Start..chunk.End of targetPath for every line of
// replacementPath and writes the result back over targetPath. No backup is
// kept. The target's lock file is held from the read through the write, so
// concurrent replacements of one target apply one after another. Read and
// write failures are returned as *balance.FileAccessError.
func (r *Replacer) Replace(ctx context.Context, targetPath, replacementPath string, chunk Chunk) (*Outcome, error) {
	if err := chunk.Validate(); err != nil {
		return nil, err
	}

	replacement, err := fileutil.ReadLines(replacementPath)
	if err != nil {
		return nil, &balance.FileAccessError{Path: replacementPath, Op: "read", Err: err}
	}

	lock := filelock.NewFileLock(targetPath + ".lock")
	if err := lock.Lock(ctx); err != nil {
		return nil, &balance.FileAccessError{Path: targetPath, Op: "lock", Err: err}
	}
	defer lock.Unlock()

	target, err := fileutil.ReadLines(targetPath)
	if err != nil {
		return nil, &balance.FileAccessError{Path: targetPath, Op: "read", Err: err}
	}

	r.debugf("Original line count: %d", len(target))
	r.debugf("Replacing lines %d to %d", chunk.Start, chunk.End)
	if chunk.Start <= len(target) {
		r.debugf("Line %d (to be replaced): %q", chunk.Start, target[chunk.Start-1])
	}
	if chunk.End >= 1 && chunk.End <= len(target) {
		r.debugf("Line %d (to be replaced): %q", chunk.End, target[chunk.End-1])
	}

	if r.Strict && !chunk.Fits(len(target)) {
		return nil, fmt.Errorf("%w: lines %s in %s (%d lines)", ErrRangeOutOfBounds, chunk, targetPath, len(target))
	}

	lines, truncated := Splice(target, replacement, chunk)
	if truncated {
		r.debugf("Range %s truncated to %d target lines", chunk, len(target))
	}

	if err := filelock.AtomicWrite(targetPath, fileutil.JoinLines(lines)); err != nil {
		return nil, &balance.FileAccessError{Path: targetPath, Op: "write", Err: err}
	}
	r.debugf("New line count: %d", len(lines))

	if r.out != nil {
		fmt.Fprintf(r.out, "Successfully replaced lines %d-%d in %s\n", chunk.Start, chunk.End, targetPath)
	}

	return &Outcome{
		TargetPath:      targetPath,
		ReplacementPath: replacementPath,
		Chunk:           chunk,
		LinesBefore:     len(target),
		LinesAfter:      len(lines),
		Truncated:       truncated,
	}, nil
}

func (r *Replacer) debugf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.LogDebug(fmt.Sprintf(format, args...))
	}
}
