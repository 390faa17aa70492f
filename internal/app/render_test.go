package app

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrawl/internal/mode"
)

func TestLayout_ExpandsTabsToStops(t *testing.T) {
	cells := layout("a\tb", 4)
	require.Equal(t, []cell{
		{text: "a", x: 0, width: 1},
		{text: "   ", x: 1, width: 3},
		{text: "b", x: 4, width: 1},
	}, cells)
}

func TestLayout_WideAndZeroWidthRunes(t *testing.T) {
	cells := layout("世a\u0301", 4)
	require.Len(t, cells, 3)
	require.Equal(t, cell{text: "世", x: 0, width: 2}, cells[0])
	require.Equal(t, cell{text: "a", x: 2, width: 1}, cells[1])
	require.Equal(t, cell{text: "?", x: 3, width: 1}, cells[2], "combining mark gets its own cell")
}

func TestSpan(t *testing.T) {
	cells := layout("世ab", 4)

	x, w := span(cells, 0)
	require.Equal(t, [2]int{0, 2}, [2]int{x, w})

	x, w = span(cells, 2)
	require.Equal(t, [2]int{3, 1}, [2]int{x, w})

	x, w = span(cells, 3)
	require.Equal(t, [2]int{4, 1}, [2]int{x, w}, "one past the end")

	x, w = span(nil, 0)
	require.Equal(t, [2]int{0, 1}, [2]int{x, w}, "empty line")
}

func TestRenderPlainLine_CutsToViewport(t *testing.T) {
	out, err := renderPlainLine(context.Background(), lineRequest{text: "abcdefghij", left: 3, width: 4, tab: 4})
	require.NoError(t, err)
	require.Equal(t, "defg", out)
}

func TestRenderCursorLine_EndOfLineCell(t *testing.T) {
	r := lineRequest{text: "ab", width: 10, tab: 4}
	require.Equal(t, "ab ", renderCursorLine(r, 2, true))
	require.Equal(t, "ab", renderCursorLine(r, 2, false))
	require.Equal(t, "ab", renderCursorLine(r, 1, true))
}

func TestRenderHeader(t *testing.T) {
	require.Equal(t, " notes.txt ", renderHeader("notes.txt", false, 40))
	require.Equal(t, " notes.txt [+]", renderHeader("notes.txt", true, 40))
	require.Equal(t, 6, lipgloss.Width(renderHeader("a-very-long-name.txt", false, 6)))
}

func TestRenderFooter_HintsWithoutStatus(t *testing.T) {
	out := renderFooter(mode.Normal, "NORMAL", "", false, "1:1", 60)
	require.Equal(t, 60, lipgloss.Width(out))
	require.True(t, strings.HasPrefix(out, " NORMAL "))
	require.Contains(t, out, "i insert")
	require.True(t, strings.HasSuffix(out, " 1:1 "))
}

func TestRenderFooter_StatusTruncatedWithTail(t *testing.T) {
	out := renderFooter(mode.Command, "COMMAND", strings.Repeat("x", 100), true, "12:7", 30)
	require.Equal(t, 30, lipgloss.Width(out))
	require.Contains(t, out, "…")
	require.Contains(t, out, "12:7")
	require.NotContains(t, out, "w write", "status replaces hints")
}

func TestRenderFooter_NarrowerThanBadges(t *testing.T) {
	out := renderFooter(mode.Insert, "INSERT", "saved", false, "1:1", 5)
	require.LessOrEqual(t, lipgloss.Width(out), 5)
}
