package buffer

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an address outside the buffer. Callers are expected to
// clamp before reaching the buffer, so seeing one of these is a bug.
type IndexError struct {
	Op     string
	Line   int
	Column int
	Lines  int
	Length int
}

func (e *IndexError) Error() string {
	if e.Column < 0 && e.Length < 0 {
		return fmt.Sprintf("%s: line %d outside [0, %d)", e.Op, e.Line, e.Lines)
	}
	return fmt.Sprintf("%s: column %d on line %d outside [0, %d]", e.Op, e.Column, e.Line, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// DecodeError reports input that was not valid UTF-8. The buffer returned
// alongside it holds a lossy decode with U+FFFD in place of bad bytes.
type DecodeError struct {
	Offset  int // byte offset of the first invalid sequence
	Invalid int // number of invalid sequences replaced
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte %d (%d sequence(s) replaced)", e.Offset, e.Invalid)
}
