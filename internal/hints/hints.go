// Package hints looks up environment-provided SDK home hints. A hint is a
// path stored under "<prefix>.<name>", e.g. "jdk.corretto-17", and lets the
// table resolve SDKs that were never registered explicitly.
package hints

import (
	"os"
	"strings"
)

//go:generate mockery --name Source --output ../mocks --outpkg mocks --with-expecter

// Source answers hint lookups. Implementations must be safe for concurrent reads.
type Source interface {
	Lookup(key string) (string, bool)
}

// Key builds the lookup key for name under prefix.
func Key(prefix, name string) string {
	return prefix + "." + name
}

// Static is a fixed map of hints.
type Static map[string]string

// Lookup implements Source.
func (s Static) Lookup(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Environ reads hints from process environment variables. The key
// "jdk.corretto-17" is read from JDK_CORRETTO_17.
type Environ struct {
	lookup func(string) (string, bool)
}

// NewEnviron returns an Environ backed by os.LookupEnv.
func NewEnviron() *Environ {
	return &Environ{lookup: os.LookupEnv}
}

// Lookup implements Source.
func (e *Environ) Lookup(key string) (string, bool) {
	v, ok := e.lookup(EnvName(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvName converts a hint key to its environment variable name.
func EnvName(key string) string {
	return strings.ToUpper(envReplacer.Replace(key))
}

// Chain consults sources in order; the first hit wins.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}
