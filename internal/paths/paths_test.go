package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDir_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "scrawl"), ConfigDir())
	require.Equal(t, filepath.Join(home, ".config", "scrawl", "config.yaml"), ConfigFile())
	require.Equal(t, filepath.Join(home, ".config", "scrawl", "history.db"), HistoryFile())
	require.Equal(t, filepath.Join(home, ".config", "scrawl", "traces", "traces.jsonl"), TracesFile())
}

func TestLocalConfigFile(t *testing.T) {
	require.Equal(t, filepath.Join(".scrawl", "config.yaml"), LocalConfigFile())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde slash", in: "~/notes/a.txt", want: filepath.Join(home, "notes", "a.txt")},
		{name: "absolute", in: "/tmp/../tmp/x", want: "/tmp/x"},
		{name: "relative", in: "./a/../b.txt", want: "b.txt"},
		{name: "tilde user untouched", in: "~bob/x", want: "~bob/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
