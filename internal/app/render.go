package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/scrawl/internal/keys"
	"github.com/zjrosen/scrawl/internal/mode"
	"github.com/zjrosen/scrawl/internal/ui/styles"
)

const filler = "~"

// cell is one buffer rune laid out on screen.
type cell struct {
	text  string // tabs are expanded to spaces
	x     int    // first screen column
	width int
}

// layout places every rune of line on screen. Tabs advance to the next
// multiple of tabWidth. Runes with no width of their own are drawn as "?" so
// that every column the cursor can address occupies at least one cell.
func layout(line string, tabWidth int) []cell {
	cells := make([]cell, 0, len(line))
	x := 0
	for _, r := range line {
		var c cell
		switch w := runewidth.RuneWidth(r); {
		case r == '\t':
			n := tabWidth - x%tabWidth
			c = cell{text: strings.Repeat(" ", n), x: x, width: n}
		case w == 0:
			c = cell{text: "?", x: x, width: 1}
		default:
			c = cell{text: string(r), x: x, width: w}
		}
		cells = append(cells, c)
		x += c.width
	}
	return cells
}

// span is the screen column and width of buffer column col. Past the end of
// the line it is the single cell after the last character.
func span(cells []cell, col int) (x, width int) {
	if col < len(cells) {
		return cells[col].x, cells[col].width
	}
	if len(cells) == 0 {
		return 0, 1
	}
	last := cells[len(cells)-1]
	return last.x + last.width, 1
}

// lineRequest is the input for rendering one body line without a cursor.
type lineRequest struct {
	text  string
	left  int
	width int
	tab   int
}

func (r lineRequest) key() string {
	return fmt.Sprintf("%d/%d/%d/%s", r.left, r.width, r.tab, r.text)
}

func renderPlainLine(_ context.Context, r lineRequest) (string, error) {
	var b strings.Builder
	for _, c := range layout(r.text, r.tab) {
		b.WriteString(c.text)
	}
	return styles.TextStyle.Render(ansi.Cut(b.String(), r.left, r.left+r.width)), nil
}

// renderCursorLine draws line with the cell at col in reverse video. A
// cursor past the end of the line is drawn as a reversed space.
func renderCursorLine(r lineRequest, col int, visible bool) string {
	cells := layout(r.text, r.tab)

	var b strings.Builder
	for i, c := range cells {
		if i == col && visible {
			b.WriteString(styles.CursorStyle.Render(c.text))
			continue
		}
		b.WriteString(styles.TextStyle.Render(c.text))
	}
	if col >= len(cells) && visible {
		b.WriteString(styles.CursorStyle.Render(" "))
	}
	return ansi.Cut(b.String(), r.left, r.left+r.width)
}

func modeStyle(m mode.Mode) lipgloss.Style {
	switch m {
	case mode.Insert:
		return styles.ModeInsertStyle
	case mode.Command:
		return styles.ModeCommandStyle
	default:
		return styles.ModeNormalStyle
	}
}

func renderHeader(name string, dirty bool, width int) string {
	out := styles.HeaderStyle.Render(name)
	if dirty {
		out += styles.HeaderDirtyStyle.Render("[+]")
	}
	return ansi.Truncate(out, width, "…")
}

// renderFooter lays out the mode badge on the left, the position on the
// right, and the status (or key hints when there is none) in between.
func renderFooter(m mode.Mode, label, status string, failed bool, position string, width int) string {
	left := modeStyle(m).Render(label)
	right := styles.PositionStyle.Render(position)
	room := width - lipgloss.Width(left) - lipgloss.Width(right)
	if room < 0 {
		return ansi.Truncate(left+right, width, "")
	}

	var middle string
	if status != "" {
		// Both status styles pad one cell on each side.
		text := status
		if avail := room - 2; uniseg.StringWidth(text) > avail {
			text = truncate.StringWithTail(text, uint(max(avail, 0)), "…")
		}
		if failed {
			middle = styles.StatusErrorStyle.Render(text)
		} else {
			middle = styles.StatusStyle.Render(text)
		}
	} else {
		middle = renderHints(keys.Hints(m))
	}
	if lipgloss.Width(middle) > room {
		middle = ansi.Truncate(middle, room, "")
	}

	gap := strings.Repeat(" ", room-lipgloss.Width(middle))
	return left + middle + gap + right
}

func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if len(parts) == 0 {
		return ""
	}
	return styles.HintStyle.Render(" " + strings.Join(parts, "  "))
}
