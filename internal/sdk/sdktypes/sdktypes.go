// Package sdktypes holds the built-in SDK types. Homes are inspected through
// afero so callers can substitute an in-memory filesystem.
package sdktypes

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/afero"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
)

// Type names.
const (
	JavaTypeName = "JavaSDK"
	GoTypeName   = "GoSDK"
)

// DefaultTypeName is the classifier used when a lookup names no type.
const DefaultTypeName = JavaTypeName

// ErrInvalidHome is returned by CreateSdk when home fails IsValidHome.
var ErrInvalidHome = errors.New("not a valid sdk home")

// Java recognises JDK installations by bin/javac.
type Java struct {
	fs   afero.Fs
	meta *MetadataReader
}

var _ sdk.Type = (*Java)(nil)

// NewJava creates the Java type.
func NewJava(fsys afero.Fs, meta *MetadataReader) *Java {
	return &Java{fs: fsys, meta: meta}
}

// Name implements sdk.Type.
func (j *Java) Name() string { return JavaTypeName }

// IsValidHome implements sdk.Type.
func (j *Java) IsValidHome(home string) bool {
	if home == "" {
		return false
	}
	return anyExists(j.fs, home, "bin/javac", "bin/javac.exe")
}

// CreateSdk implements sdk.Type. Version and vendor come from the release
// file when present.
func (j *Java) CreateSdk(name, home string) (*sdk.Sdk, error) {
	if !j.IsValidHome(home) {
		return nil, fmt.Errorf("%s: %w", home, ErrInvalidHome)
	}

	s := sdk.New(name, JavaTypeName)
	s.SetHomePath(home)

	props, err := j.meta.Release(home)
	if err != nil {
		log.Warn(log.CatResolve, "unreadable release file", "home", home, "error", err)
		return s, nil
	}
	s.SetVersion(props["JAVA_VERSION"])
	s.SetAttribute("vendor", props["IMPLEMENTOR"])
	s.SetAttribute("os", props["OS_NAME"])
	s.SetAttribute("arch", props["OS_ARCH"])
	return s, nil
}

// Go recognises Go toolchains by bin/go plus a VERSION file.
type Go struct {
	fs   afero.Fs
	meta *MetadataReader
}

var _ sdk.Type = (*Go)(nil)

// NewGo creates the Go type.
func NewGo(fsys afero.Fs, meta *MetadataReader) *Go {
	return &Go{fs: fsys, meta: meta}
}

// Name implements sdk.Type.
func (g *Go) Name() string { return GoTypeName }

// IsValidHome implements sdk.Type.
func (g *Go) IsValidHome(home string) bool {
	if home == "" {
		return false
	}
	return anyExists(g.fs, home, "bin/go", "bin/go.exe") && anyExists(g.fs, home, "VERSION")
}

// CreateSdk implements sdk.Type.
func (g *Go) CreateSdk(name, home string) (*sdk.Sdk, error) {
	if !g.IsValidHome(home) {
		return nil, fmt.Errorf("%s: %w", home, ErrInvalidHome)
	}

	meta, err := g.meta.GoVersion(home)
	if err != nil {
		return nil, err
	}

	s := sdk.New(name, GoTypeName)
	s.SetHomePath(home)
	s.SetVersion(meta["version"])
	s.SetAttribute("goroot", home)
	s.SetAttribute("released", meta["time"])
	return s, nil
}

func anyExists(fsys afero.Fs, home string, rels ...string) bool {
	for _, rel := range rels {
		info, err := fsys.Stat(filepath.Join(home, filepath.FromSlash(rel)))
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

type options struct {
	meta *MetadataReader
	ttl  time.Duration
}

// Option configures Default.
type Option func(*options)

// WithMetadataTTL sets how long parsed metadata stays cached.
func WithMetadataTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithMetadataReader shares an existing reader between type sets.
func WithMetadataReader(r *MetadataReader) Option {
	return func(o *options) { o.meta = r }
}

// Default returns the built-in types, Java first.
func Default(fsys afero.Fs, opts ...Option) *sdk.Types {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.meta == nil {
		o.meta = NewMetadataReader(fsys, o.ttl)
	}
	return sdk.NewTypes(NewJava(fsys, o.meta), NewGo(fsys, o.meta))
}

// InternalGo describes the toolchain this binary was built with. It plays
// the role of the bundled SDK that is always available.
func InternalGo() *sdk.Sdk {
	s := sdk.New("Go "+runtime.Version(), GoTypeName)
	s.SetHomePath(runtime.GOROOT()) //nolint:staticcheck // GOROOT of the build toolchain is what we want to show
	s.SetVersion(runtime.Version())
	s.SetAttribute("goos", runtime.GOOS)
	s.SetAttribute("goarch", runtime.GOARCH)
	return s
}
