package persist

import (
	"errors"
	"fmt"
)

// ErrMissingFileName is returned by Save when the buffer is not bound to a
// file.
var ErrMissingFileName = errors.New("no file name")

// ErrUnreadable is wrapped by the WriteError Save returns for a file whose
// current content could not be read.
var ErrUnreadable = errors.New("existing file is unreadable, refusing to overwrite")

// ReadError reports a file that exists but could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed save. The target file is left as it was.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
