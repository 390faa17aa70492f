package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ApplyDefaults registers every default with v so that keys missing from the
// config file still decode to their default values.
func ApplyDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.virtual_edit", d.Editor.VirtualEdit)
	v.SetDefault("editor.frame_interval", d.Editor.FrameInterval)
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.restore_cursor", d.Editor.RestoreCursor)
	v.SetDefault("editor.watch_file", d.Editor.WatchFile)
	v.SetDefault("ui.show_header", d.UI.ShowHeader)
	v.SetDefault("ui.no_color", d.UI.NoColor)
	v.SetDefault("ui.theme.preset", d.UI.Theme.Preset)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("flags", d.Flags)
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
