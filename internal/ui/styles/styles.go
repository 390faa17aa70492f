// Package styles contains Lip Gloss style definitions for the editor view.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text

	HeaderTextColor  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	HeaderDirtyColor = lipgloss.AdaptiveColor{Light: "#C27C0E", Dark: "#FECA57"} // [+] marker

	ModeNormalColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ModeInsertColor  = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#1E8449"}
	ModeCommandColor = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ModeTextColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	FillerColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"} // "~" past end of buffer
)

var (
	TextStyle   = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	HintStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	FillerStyle = lipgloss.NewStyle().Foreground(FillerColor)
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	HeaderStyle      = lipgloss.NewStyle().Foreground(HeaderTextColor).Bold(true).Padding(0, 1)
	HeaderDirtyStyle = lipgloss.NewStyle().Foreground(HeaderDirtyColor).Bold(true)

	baseModeStyle    = lipgloss.NewStyle().Foreground(ModeTextColor).Bold(true).Padding(0, 1)
	ModeNormalStyle  = baseModeStyle.Background(ModeNormalColor)
	ModeInsertStyle  = baseModeStyle.Background(ModeInsertColor)
	ModeCommandStyle = baseModeStyle.Background(ModeCommandColor)

	StatusStyle      = lipgloss.NewStyle().Foreground(StatusSuccessColor).Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true).Padding(0, 1)

	PositionStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Padding(0, 1)
)
