// Package paths resolves where scrawl keeps its files.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory.
const AppName = "scrawl"

// ConfigDir returns ~/.config/scrawl, or "" when the home directory is
// unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile is the user-level config file.
func ConfigFile() string {
	return join(ConfigDir(), "config.yaml")
}

// LocalConfigFile is the project-level config file, relative to the working
// directory.
func LocalConfigFile() string {
	return filepath.Join("."+AppName, "config.yaml")
}

// HistoryFile is the default cursor history database.
func HistoryFile() string {
	return join(ConfigDir(), "history.db")
}

// TracesFile is the default output of the file trace exporter.
func TracesFile() string {
	return join(ConfigDir(), "traces", "traces.jsonl")
}

// DebugLogFile is the log written when debug mode is on.
func DebugLogFile() string {
	return "debug.log"
}

// ExpandHome replaces a leading "~" or "~/" with the home directory and
// cleans the result. Other paths are only cleaned. "" stays "".
func ExpandHome(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Clean(path)
		}
		return filepath.Join(home, path[1:])
	}
	return filepath.Clean(path)
}

func join(dir string, elem ...string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(append([]string{dir}, elem...)...)
}
