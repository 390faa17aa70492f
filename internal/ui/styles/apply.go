package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.UIConfig's theme fields to avoid an import cycle.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme resets to the default colors, layers the preset on top, then
// the individual overrides, and rebuilds every style.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// ValidateTheme checks cfg without touching the active styles.
func ValidateTheme(cfg ThemeConfig) error {
	if cfg.Preset != "" {
		if _, ok := Presets[cfg.Preset]; !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
	}
	for key, value := range cfg.Colors {
		if !isValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}
	return nil
}

func applyColors(colors map[ColorToken]string) {
	set := func(dst *lipgloss.AdaptiveColor, token ColorToken) {
		if hex, ok := colors[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
	set(&TextPrimaryColor, TokenTextPrimary)
	set(&TextMutedColor, TokenTextMuted)
	set(&HeaderTextColor, TokenHeaderText)
	set(&HeaderDirtyColor, TokenHeaderDirty)
	set(&ModeNormalColor, TokenModeNormal)
	set(&ModeInsertColor, TokenModeInsert)
	set(&ModeCommandColor, TokenModeCommand)
	set(&ModeTextColor, TokenModeText)
	set(&StatusSuccessColor, TokenStatusSuccess)
	set(&StatusErrorColor, TokenStatusError)
	set(&FillerColor, TokenFiller)
}

// rebuildStyles recreates the styles, which capture colors at creation time.
func rebuildStyles() {
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	FillerStyle = lipgloss.NewStyle().Foreground(FillerColor)
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	HeaderStyle = lipgloss.NewStyle().Foreground(HeaderTextColor).Bold(true).Padding(0, 1)
	HeaderDirtyStyle = lipgloss.NewStyle().Foreground(HeaderDirtyColor).Bold(true)

	baseModeStyle = lipgloss.NewStyle().Foreground(ModeTextColor).Bold(true).Padding(0, 1)
	ModeNormalStyle = baseModeStyle.Background(ModeNormalColor)
	ModeInsertStyle = baseModeStyle.Background(ModeInsertColor)
	ModeCommandStyle = baseModeStyle.Background(ModeCommandColor)

	StatusStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true).Padding(0, 1)

	PositionStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Padding(0, 1)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
