package scanner

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is wrapped by RootError when the scan root is a file
var ErrNotDirectory = errors.New("not a directory")

// RootError reports a scan root that is missing, unreadable or not a directory.
// It always aborts the run.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// HashError reports a file or directory below the root that could not be read
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}
