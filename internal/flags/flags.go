// Package flags holds the boolean feature switches read from the "flags"
// section of the config. A Registry never changes after New.
package flags

import (
	"maps"

	"github.com/zjrosen/sdktable/internal/log"
)

const (
	// FlagEnvHints adds unprefixed JDK_<NAME> environment variables to the
	// hint chain. SDKTABLE_-prefixed variables are read regardless.
	FlagEnvHints = "env-hints"

	// FlagSQLiteBackup copies an existing SQLite table to <path>.bak before
	// migrations run.
	FlagSQLiteBackup = "sqlite-backup"
)

// Registry answers flag lookups. Unknown flags are off, and so is every
// flag of a nil Registry.
type Registry struct {
	flags map[string]bool
}

// New copies flags into a Registry.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: maps.Clone(flags)}
	if r.flags == nil {
		r.flags = map[string]bool{}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags))
	return r
}

// Enabled reports whether name is on.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
	}
	return value
}

// All returns a copy of every flag.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
