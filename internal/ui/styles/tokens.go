package styles

// ColorToken names a themable color.
type ColorToken string

const (
	TokenTextPrimary ColorToken = "text_primary"
	TokenTextMuted   ColorToken = "text_muted"

	TokenHeaderText  ColorToken = "header_text"
	TokenHeaderDirty ColorToken = "header_dirty"

	TokenModeNormal  ColorToken = "mode_normal"
	TokenModeInsert  ColorToken = "mode_insert"
	TokenModeCommand ColorToken = "mode_command"
	TokenModeText    ColorToken = "mode_text"

	TokenStatusSuccess ColorToken = "status_success"
	TokenStatusError   ColorToken = "status_error"

	TokenFiller ColorToken = "filler"
)

// AllTokens lists every token accepted in ui.colors.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,
		TokenHeaderText,
		TokenHeaderDirty,
		TokenModeNormal,
		TokenModeInsert,
		TokenModeCommand,
		TokenModeText,
		TokenStatusSuccess,
		TokenStatusError,
		TokenFiller,
	}
}
