// Package flags gates editor features behind config-driven switches.
// A registry is read-only once built; unknown flags read as disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/scrawl/internal/log"
)

const (
	// FlagRestoreCursor reopens files at the cursor position they were
	// closed with, using the history store.
	FlagRestoreCursor = "restore-cursor"

	// FlagWatchFile reports edits made to the open file by other programs.
	FlagWatchFile = "watch-file"
)

// Defaults is the flag set used when the config has no flags section.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagRestoreCursor: true,
		FlagWatchFile:     true,
	}
}

// Registry holds flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. A nil map disables everything.
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: maps.Clone(flags)}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.Names())
	return r
}

// Enabled reports whether name is on. Unknown flags and a nil registry
// report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of every flag.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}

// Names returns the enabled flag names, sorted.
func (r *Registry) Names() []string {
	var names []string
	for name, on := range r.All() {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
