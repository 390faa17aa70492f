package styles

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains the built-in themes, keyed by name.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset matches the initial values in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default scrawl theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextMuted:     "#696969",
		TokenHeaderText:    "#BBBBBB",
		TokenHeaderDirty:   "#FECA57",
		TokenModeNormal:    "#1A5276",
		TokenModeInsert:    "#1E8449",
		TokenModeCommand:   "#922B21",
		TokenModeText:      "#FFFFFF",
		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",
		TokenFiller:        "#54A0FF",
	},
}

var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4",
		TokenTextMuted:     "#4C566A",
		TokenHeaderText:    "#D8DEE9",
		TokenHeaderDirty:   "#EBCB8B",
		TokenModeNormal:    "#5E81AC",
		TokenModeInsert:    "#A3BE8C",
		TokenModeCommand:   "#BF616A",
		TokenModeText:      "#2E3440",
		TokenStatusSuccess: "#A3BE8C",
		TokenStatusError:   "#BF616A",
		TokenFiller:        "#81A1C1",
	},
}

var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextMuted:     "#AAAAAA",
		TokenHeaderText:    "#FFFFFF",
		TokenHeaderDirty:   "#FFFF00",
		TokenModeNormal:    "#0000FF",
		TokenModeInsert:    "#00AA00",
		TokenModeCommand:   "#FF0000",
		TokenModeText:      "#FFFFFF",
		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",
		TokenFiller:        "#00FFFF",
	},
}
