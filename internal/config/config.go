// Package config provides configuration types and defaults for scrawl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/scrawl/internal/flags"
	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/paths"
	"github.com/zjrosen/scrawl/internal/tracing"
	"github.com/zjrosen/scrawl/internal/ui/styles"
)

// VirtualEditOneMore lets the cursor rest one past the end of a line in
// Normal mode.
const VirtualEditOneMore = "onemore"

// Config holds all configuration options for scrawl.
type Config struct {
	Editor  EditorConfig    `mapstructure:"editor"`
	UI      UIConfig        `mapstructure:"ui"`
	History HistoryConfig   `mapstructure:"history"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	VirtualEdit   string        `mapstructure:"virtual_edit"`   // "" or "onemore"
	FrameInterval time.Duration `mapstructure:"frame_interval"` // idle redraw period
	TabWidth      int           `mapstructure:"tab_width"`      // cells per tab stop
	RestoreCursor bool          `mapstructure:"restore_cursor"`
	WatchFile     bool          `mapstructure:"watch_file"`
}

// OneMore reports whether virtual_edit is "onemore".
func (e EditorConfig) OneMore() bool {
	return e.VirtualEdit == VirtualEditOneMore
}

// UIConfig holds rendering options.
type UIConfig struct {
	ShowHeader bool        `mapstructure:"show_header"`
	NoColor    bool        `mapstructure:"no_color"`
	Theme      ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig selects a color preset and per-token overrides.
type ThemeConfig struct {
	Preset string            `mapstructure:"preset"` // default, nord, high-contrast
	Colors map[string]string `mapstructure:"colors"` // token -> "#RRGGBB"
}

// Styles converts the section to the styles package's form.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.Colors}
}

// HistoryConfig locates the cursor history database.
type HistoryConfig struct {
	// Path of the SQLite file. Empty means ~/.config/scrawl/history.db.
	Path string `mapstructure:"path"`
}

// ResolvedPath returns Path with ~ expanded, or the default location.
func (h HistoryConfig) ResolvedPath() string {
	if h.Path == "" {
		return paths.HistoryFile()
	}
	return paths.ExpandHome(h.Path)
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"`      // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`     // for the file exporter
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"` // for the otlp exporter
	SampleRate   float64 `mapstructure:"sample_rate"`   // 0.0 - 1.0
}

// Provider converts the config section to the tracing package's form,
// filling in the default trace file.
func (t TracingConfig) Provider() tracing.Config {
	filePath := paths.ExpandHome(t.FilePath)
	if filePath == "" {
		filePath = paths.TracesFile()
	}
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
	}
}

// FlagRegistry builds the feature flag registry.
func (c Config) FlagRegistry() *flags.Registry {
	if c.Flags == nil {
		return flags.New(flags.Defaults())
	}
	return flags.New(c.Flags)
}

// RestoreCursor reports whether cursor history is both wanted and allowed.
func (c Config) RestoreCursor(reg *flags.Registry) bool {
	return c.Editor.RestoreCursor && reg.Enabled(flags.FlagRestoreCursor)
}

// WatchFile reports whether the open file should be watched.
func (c Config) WatchFile(reg *flags.Registry) bool {
	return c.Editor.WatchFile && reg.Enabled(flags.FlagWatchFile)
}

// Validate checks every section and returns the first problem.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := styles.ValidateTheme(c.UI.Theme.Styles()); err != nil {
		return fmt.Errorf("ui.theme: %w", err)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	switch e.VirtualEdit {
	case "", VirtualEditOneMore:
	default:
		return fmt.Errorf("editor.virtual_edit must be \"\" or %q, got %q", VirtualEditOneMore, e.VirtualEdit)
	}
	if e.FrameInterval < time.Millisecond || e.FrameInterval > time.Second {
		return fmt.Errorf("editor.frame_interval must be between 1ms and 1s, got %v", e.FrameInterval)
	}
	if e.TabWidth < 1 || e.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", e.TabWidth)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc TracingConfig) error {
	if tc.SampleRate < 0 || tc.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			VirtualEdit:   "",
			FrameInterval: time.Second / 60,
			TabWidth:      4,
			RestoreCursor: true,
			WatchFile:     true,
		},
		UI: UIConfig{
			ShowHeader: true,
			NoColor:    false,
			Theme:      ThemeConfig{Preset: "default"},
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived from the config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: flags.Defaults(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# scrawl configuration

editor:
  # Set to "onemore" to let the cursor sit after the last character
  # in normal mode, like it does while inserting.
  virtual_edit: ""
  frame_interval: 16ms   # idle redraw period
  tab_width: 4           # cells per tab stop
  restore_cursor: true   # reopen files where you left them
  watch_file: true       # warn when another program changes the open file

ui:
  show_header: true      # file name line at the top
  no_color: false        # plain output, same as --no-color
  theme:
    preset: default      # default, nord, high-contrast
    # colors:
    #   mode_insert: "#1E8449"
    #   filler: "#54A0FF"

# Cursor history database (default: ~/.config/scrawl/history.db)
# history:
#   path: ~/.config/scrawl/history.db

# Tracing of file open/save
tracing:
  enabled: false
  exporter: file                 # none, file, stdout, otlp
  # file_path: ~/.config/scrawl/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags
flags:
  restore-cursor: true
  watch-file: true
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := writeAtomic(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
