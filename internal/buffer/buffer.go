// Package buffer holds the text being edited as a slice of lines, each a
// slice of runes.
//
// Lines are addressed independently so that per-line queries and edits cost
// O(line length) rather than O(document length). Splitting or joining lines
// shifts the line slice, which is a single memmove of line headers.
//
// A Buffer always has at least one (possibly empty) line. Addresses are
// (line, column) pairs where column counts runes and may equal the line
// length, meaning "after the last character".
package buffer

import (
	"runtime"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	lf   = "\n"
	crlf = "\r\n"
)

// DefaultSeparator is the line separator used for buffers that did not come
// from a file containing line breaks.
func DefaultSeparator() string {
	if runtime.GOOS == "windows" {
		return crlf
	}
	return lf
}

// Buffer is an editable, line-addressed text document.
type Buffer struct {
	lines    [][]rune
	sep      string
	revision uint64
}

// New returns an empty single-line buffer.
func New() *Buffer {
	return &Buffer{
		lines: [][]rune{{}},
		sep:   DefaultSeparator(),
	}
}

// FromString builds a buffer from already-decoded text split on "\n".
func FromString(s string) *Buffer {
	b, _ := Load([]byte(s))
	return b
}

// Load decodes data into a buffer. Empty or nil data yields an empty buffer.
//
// Invalid UTF-8 never fails the load: each bad byte becomes U+FFFD and a
// *DecodeError is returned together with the usable buffer.
func Load(data []byte) (*Buffer, error) {
	b := New()
	if len(data) == 0 {
		return b, nil
	}

	var (
		decodeErr *DecodeError
		lines     = make([][]rune, 0, 1+strings.Count(string(data), lf))
		current   = make([]rune, 0, 64)
		newlines  int
		crlfs     int
	)

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			if decodeErr == nil {
				decodeErr = &DecodeError{Offset: i}
			}
			decodeErr.Invalid++
		}
		if r == '\n' {
			newlines++
			if n := len(current); n > 0 && current[n-1] == '\r' {
				crlfs++
			}
			lines = append(lines, current)
			current = make([]rune, 0, 64)
		} else {
			current = append(current, r)
		}
		i += size
	}
	lines = append(lines, current)

	if newlines > 0 && crlfs == newlines {
		b.sep = crlf
		for i := 0; i < len(lines)-1; i++ {
			lines[i] = lines[i][:len(lines[i])-1]
		}
	} else if newlines > 0 {
		b.sep = lf
	}
	b.lines = lines

	if decodeErr != nil {
		return b, decodeErr
	}
	return b, nil
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the number of runes on a line.
func (b *Buffer) LineLength(line int) (int, error) {
	if err := b.checkLine("line_length", line); err != nil {
		return 0, err
	}
	return len(b.lines[line]), nil
}

// Line returns the text of a line without its separator.
func (b *Buffer) Line(line int) (string, error) {
	if err := b.checkLine("line", line); err != nil {
		return "", err
	}
	return string(b.lines[line]), nil
}

// Lines returns a copy of every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// String returns the whole document joined with "\n".
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), lf)
}

// Separator returns the separator Serialize joins lines with.
func (b *Buffer) Separator() string {
	return b.sep
}

// Revision increases on every successful mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// InsertChar inserts r before column col of line. Inserting '\n' splits the
// line at col. A lone '\r' is a line break too, so no line ever ends in a
// carriage return that Load would later read as part of a CRLF separator.
func (b *Buffer) InsertChar(line, col int, r rune) error {
	if err := b.checkAddr("insert_char", line, col); err != nil {
		return err
	}

	if r == '\n' || r == '\r' {
		head := b.lines[line][:col:col]
		tail := slices.Clone(b.lines[line][col:])
		b.lines[line] = head
		b.lines = slices.Insert(b.lines, line+1, tail)
	} else {
		b.lines[line] = slices.Insert(b.lines[line], col, r)
	}
	b.revision++
	return nil
}

// DeleteChar removes the rune at column col of line. At the start of a line
// other than the first, the line is merged into the previous one instead.
// At the end of a line that is not the last, the following line is joined
// onto it. At the end of the last line nothing happens.
func (b *Buffer) DeleteChar(line, col int) error {
	if err := b.checkAddr("delete_char", line, col); err != nil {
		return err
	}

	switch {
	case col == 0 && line > 0:
		b.joinWithNext(line - 1)
	case col < len(b.lines[line]):
		b.lines[line] = slices.Delete(b.lines[line], col, col+1)
	case line < len(b.lines)-1:
		b.joinWithNext(line)
	default:
		return nil
	}
	b.revision++
	return nil
}

// Backspace removes the rune before (line, col) and returns the resulting
// caret. At column 0 of a line other than the first, the line is merged into
// the previous one. At (0, 0) nothing happens.
func (b *Buffer) Backspace(line, col int) (int, int, error) {
	if err := b.checkAddr("backspace", line, col); err != nil {
		return line, col, err
	}

	switch {
	case col > 0:
		b.lines[line] = slices.Delete(b.lines[line], col-1, col)
		b.revision++
		return line, col - 1, nil
	case line > 0:
		prevLen := len(b.lines[line-1])
		b.joinWithNext(line - 1)
		b.revision++
		return line - 1, prevLen, nil
	default:
		return 0, 0, nil
	}
}

// Serialize renders the buffer as bytes: lines joined by Separator, with no
// header or trailer.
func (b *Buffer) Serialize() []byte {
	size := len(b.sep) * (len(b.lines) - 1)
	for _, l := range b.lines {
		size += len(l)
	}

	var sb strings.Builder
	sb.Grow(size)
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteString(b.sep)
		}
		for _, r := range l {
			sb.WriteRune(r)
		}
	}
	return []byte(sb.String())
}

func (b *Buffer) joinWithNext(line int) {
	b.lines[line] = append(b.lines[line], b.lines[line+1]...)
	b.lines = slices.Delete(b.lines, line+1, line+2)
}

func (b *Buffer) checkLine(op string, line int) error {
	if line < 0 || line >= len(b.lines) {
		return &IndexError{Op: op, Line: line, Column: -1, Lines: len(b.lines), Length: -1}
	}
	return nil
}

func (b *Buffer) checkAddr(op string, line, col int) error {
	if err := b.checkLine(op, line); err != nil {
		return err
	}
	if n := len(b.lines[line]); col < 0 || col > n {
		return &IndexError{Op: op, Line: line, Column: col, Lines: len(b.lines), Length: n}
	}
	return nil
}
