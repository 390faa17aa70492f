// Package cursor tracks a (line, column) position over a buffer.
//
// The cursor never holds a reference to the buffer. Every operation that
// depends on the shape of the text takes the buffer as an argument, which
// keeps the cursor a pure function of its previous position, the requested
// motion, and the current buffer.
//
// The stored column is the desired column. Vertical motion keeps it even when
// the destination line is shorter, so moving through a short line and back
// returns to the original column. Readers get a clamped position from
// Resolve.
package cursor

import "fmt"

// Shape is the part of a buffer the cursor needs to see.
type Shape interface {
	LineCount() int
	LineLength(line int) (int, error)
}

// Bound selects how far right the cursor may sit on a line.
type Bound int

const (
	// Navigation keeps the cursor on a character: at most len-1, or 0 on an
	// empty line.
	Navigation Bound = iota
	// Insertion lets the cursor sit after the last character, at len.
	Insertion
)

func (b Bound) String() string {
	switch b {
	case Navigation:
		return "navigation"
	case Insertion:
		return "insertion"
	default:
		return "unknown"
	}
}

// MaxColumn is the largest column allowed on a line of n runes.
func (b Bound) MaxColumn(n int) int {
	if b == Insertion || n == 0 {
		return n
	}
	return n - 1
}

// Cursor is a position in a buffer. The zero value is (0, 0).
type Cursor struct {
	line int
	col  int
}

// New returns a cursor at the start of the buffer.
func New() Cursor {
	return Cursor{}
}

// At returns a cursor at the given raw position. Negative values become 0.
func At(line, col int) Cursor {
	return Cursor{line: max(line, 0), col: max(col, 0)}
}

// Position returns the raw stored coordinates.
func (c Cursor) Position() (line, col int) {
	return c.line, c.col
}

// String formats the position 1-based, as shown to users.
func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.line+1, c.col+1)
}

// MoveLeft moves one column left. It does not wrap to the previous line.
// Callers holding a desired column past the end of the line should Settle
// first so the move is relative to what the user sees.
func (c *Cursor) MoveLeft() {
	if c.col > 0 {
		c.col--
	}
}

// MoveRight moves one column right, stopping at the bound's limit for the
// current line.
func (c *Cursor) MoveRight(buf Shape, bound Bound) {
	c.Settle(buf, bound)
	if c.col < bound.MaxColumn(lineLength(buf, c.line)) {
		c.col++
	}
}

// MoveDown moves one line down unless already on the last line. The column
// is left as is.
func (c *Cursor) MoveDown(buf Shape) {
	c.clampLine(buf)
	if c.line < buf.LineCount()-1 {
		c.line++
	}
}

// MoveUp moves one line up unless already on the first line. The column is
// left as is.
func (c *Cursor) MoveUp() {
	if c.line > 0 {
		c.line--
	}
}

// Settle writes the clamped position back, dropping any desired column past
// the end of the current line.
func (c *Cursor) Settle(buf Shape, bound Bound) {
	c.line, c.col = c.Resolve(buf, bound)
}

// Resolve returns the position clamped to buf under bound. The line is
// clamped too, covering lines removed since the last move.
func (c Cursor) Resolve(buf Shape, bound Bound) (line, col int) {
	line = min(max(c.line, 0), buf.LineCount()-1)
	col = min(max(c.col, 0), bound.MaxColumn(lineLength(buf, line)))
	return line, col
}

func (c *Cursor) clampLine(buf Shape) {
	c.line = min(max(c.line, 0), buf.LineCount()-1)
}

func lineLength(buf Shape, line int) int {
	n, err := buf.LineLength(line)
	if err != nil {
		return 0
	}
	return n
}
