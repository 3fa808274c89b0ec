package sdk

import (
	"errors"
	"maps"
	"slices"
)

// Sdk errors
var (
	ErrNilSdk          = errors.New("sdk cannot be nil")
	ErrEmptyName       = errors.New("sdk name cannot be empty")
	ErrDuplicateName   = errors.New("an sdk with this name already exists")
	ErrNotFound        = errors.New("sdk not found")
	ErrMalformedRecord = errors.New("malformed sdk record")
)

// Sdk is a named, installed SDK. Once added to a table the table owns it;
// everything else refers to it by pointer or by name.
type Sdk struct {
	name       string            // e.g., "corretto-17"
	typeName   string            // name of the Type that resolves it, e.g., "JavaSDK"
	homePath   string            // installation directory
	version    string            // derived from the home, e.g., "17.0.9"
	attributes map[string]string // type-specific derived metadata
}

// New creates an Sdk with only a name and type set.
func New(name, typeName string) *Sdk {
	return &Sdk{
		name:       name,
		typeName:   typeName,
		attributes: make(map[string]string),
	}
}

// Name returns the SDK name.
func (s *Sdk) Name() string {
	return s.name
}

// SetName renames the SDK. Use Table.Update on a registered SDK so listeners hear about it.
func (s *Sdk) SetName(name string) {
	s.name = name
}

// TypeName returns the name of the Type this SDK belongs to.
func (s *Sdk) TypeName() string {
	return s.typeName
}

// HomePath returns the installation directory.
func (s *Sdk) HomePath() string {
	return s.homePath
}

// SetHomePath sets the installation directory.
func (s *Sdk) SetHomePath(home string) {
	s.homePath = home
}

// Version returns the version string, empty if unknown.
func (s *Sdk) Version() string {
	return s.version
}

// SetVersion sets the version string.
func (s *Sdk) SetVersion(version string) {
	s.version = version
}

// Attribute returns a single attribute value.
func (s *Sdk) Attribute(key string) (string, bool) {
	v, ok := s.attributes[key]
	return v, ok
}

// SetAttribute sets an attribute. An empty value removes the key.
func (s *Sdk) SetAttribute(key, value string) {
	if s.attributes == nil {
		s.attributes = make(map[string]string)
	}
	if value == "" {
		delete(s.attributes, key)
		return
	}
	s.attributes[key] = value
}

// Attributes returns a copy of the attribute map.
func (s *Sdk) Attributes() map[string]string {
	out := make(map[string]string, len(s.attributes))
	maps.Copy(out, s.attributes)
	return out
}

// AttributeKeys returns attribute keys sorted alphabetically.
func (s *Sdk) AttributeKeys() []string {
	return slices.Sorted(maps.Keys(s.attributes))
}

// Clone returns an independent copy, suitable as the "modified" argument of Table.Update.
func (s *Sdk) Clone() *Sdk {
	c := New(s.name, s.typeName)
	s.CopyTo(c)
	return c
}

// CopyTo copies every mutable field of s into dst. dst keeps its identity,
// so references held elsewhere observe the new values.
func (s *Sdk) CopyTo(dst *Sdk) {
	dst.name = s.name
	dst.typeName = s.typeName
	dst.homePath = s.homePath
	dst.version = s.version
	dst.attributes = s.Attributes()
}
