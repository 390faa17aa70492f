package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrawl/internal/flags"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "", cfg.Editor.VirtualEdit)
	require.False(t, cfg.Editor.OneMore())
	require.Equal(t, time.Second/60, cfg.Editor.FrameInterval)
	require.Equal(t, 4, cfg.Editor.TabWidth)
	require.True(t, cfg.Editor.RestoreCursor)
	require.True(t, cfg.Editor.WatchFile)
	require.True(t, cfg.UI.ShowHeader)
	require.False(t, cfg.UI.NoColor)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.True(t, cfg.Flags[flags.FlagRestoreCursor])
	require.NoError(t, cfg.Validate())
}

func TestValidateEditor(t *testing.T) {
	valid := Defaults().Editor

	tests := []struct {
		name    string
		mutate  func(*EditorConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*EditorConfig) {}},
		{name: "onemore", mutate: func(e *EditorConfig) { e.VirtualEdit = "onemore" }},
		{name: "unknown virtual edit", mutate: func(e *EditorConfig) { e.VirtualEdit = "all" }, wantErr: "editor.virtual_edit"},
		{name: "zero frame interval", mutate: func(e *EditorConfig) { e.FrameInterval = 0 }, wantErr: "editor.frame_interval"},
		{name: "slow frame interval", mutate: func(e *EditorConfig) { e.FrameInterval = 2 * time.Second }, wantErr: "editor.frame_interval"},
		{name: "zero tab width", mutate: func(e *EditorConfig) { e.TabWidth = 0 }, wantErr: "editor.tab_width"},
		{name: "huge tab width", mutate: func(e *EditorConfig) { e.TabWidth = 64 }, wantErr: "editor.tab_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := ValidateEditor(e)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr string
	}{
		{name: "empty", cfg: TracingConfig{}},
		{name: "defaults", cfg: Defaults().Tracing},
		{name: "negative sample rate", cfg: TracingConfig{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "sample rate above one", cfg: TracingConfig{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "bad exporter", cfg: TracingConfig{Exporter: "zipkin"}, wantErr: "tracing.exporter"},
		{name: "otlp needs endpoint", cfg: TracingConfig{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "disabled otlp without endpoint", cfg: TracingConfig{Exporter: "otlp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTracingConfig_ProviderFillsFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Defaults().Tracing.Provider()
	require.Equal(t, filepath.Join(home, ".config", "scrawl", "traces", "traces.jsonl"), p.FilePath)
	require.Equal(t, "file", p.Exporter)

	p = TracingConfig{FilePath: "~/t.jsonl"}.Provider()
	require.Equal(t, filepath.Join(home, "t.jsonl"), p.FilePath)
}

func TestHistoryConfig_ResolvedPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "scrawl", "history.db"), HistoryConfig{}.ResolvedPath())
	require.Equal(t, filepath.Join(home, "h.db"), HistoryConfig{Path: "~/h.db"}.ResolvedPath())
}

func TestConfig_FeatureGates(t *testing.T) {
	cfg := Defaults()
	reg := cfg.FlagRegistry()
	require.True(t, cfg.RestoreCursor(reg))
	require.True(t, cfg.WatchFile(reg))

	cfg.Editor.RestoreCursor = false
	require.False(t, cfg.RestoreCursor(reg), "config can opt out")

	cfg = Defaults()
	cfg.Flags = map[string]bool{flags.FlagWatchFile: false}
	reg = cfg.FlagRegistry()
	require.False(t, cfg.WatchFile(reg), "flag gates the feature")
	require.False(t, cfg.RestoreCursor(reg), "missing flag is off")

	cfg.Flags = nil
	require.True(t, cfg.RestoreCursor(cfg.FlagRegistry()), "nil flags fall back to defaults")
}

func loadFile(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	ApplyDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Decode(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaultConfigTemplate_DecodesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultConfigTemplate()), 0600))

	cfg := loadFile(t, path)
	d := Defaults()

	require.Equal(t, d.Editor.VirtualEdit, cfg.Editor.VirtualEdit)
	require.Equal(t, 16*time.Millisecond, cfg.Editor.FrameInterval)
	require.Equal(t, d.Editor.TabWidth, cfg.Editor.TabWidth)
	require.Equal(t, d.UI, cfg.UI)
	require.Equal(t, d.Tracing, cfg.Tracing)
	require.Equal(t, d.Flags, cfg.Flags)
}

func TestDecode_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  virtual_edit: onemore\n"), 0600))

	cfg := loadFile(t, path)
	require.True(t, cfg.Editor.OneMore())
	require.Equal(t, 4, cfg.Editor.TabWidth)
	require.True(t, cfg.UI.ShowHeader)
}

func TestDecode_InvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: 0\n"), 0600))

	v := viper.New()
	ApplyDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	_, err := Decode(v)
	require.ErrorContains(t, err, "invalid config")
	require.ErrorContains(t, err, "editor.tab_width")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scrawl", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasPrefix(e.Name(), ".scrawl.yaml.tmp"), "temp file left behind")
	}
}

func TestDecode_Theme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "ui:\n  theme:\n    preset: nord\n    colors:\n      filler: \"#000000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg := loadFile(t, path)
	require.Equal(t, "nord", cfg.UI.Theme.Preset)
	require.Equal(t, map[string]string{"filler": "#000000"}, cfg.UI.Theme.Colors)
	require.Equal(t, "nord", cfg.UI.Theme.Styles().Preset)
}

func TestValidate_RejectsUnknownPreset(t *testing.T) {
	cfg := Defaults()
	cfg.UI.Theme.Preset = "solarized"
	require.ErrorContains(t, cfg.Validate(), "ui.theme: unknown theme preset")
}
