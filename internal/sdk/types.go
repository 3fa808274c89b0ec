package sdk

import "errors"

// Type errors
var (
	ErrNilType       = errors.New("sdk type cannot be nil")
	ErrDuplicateType = errors.New("duplicate sdk type name")
)

//go:generate mockery --name Type --output ../mocks --outpkg mocks --with-expecter

// Type validates SDK home directories of one kind and builds Sdks from them.
// IsValidHome and CreateSdk may touch the filesystem and should be treated as slow.
type Type interface {
	// Name is the classifier stored in Sdk.TypeName, e.g., "JavaSDK".
	Name() string

	// IsValidHome reports whether home looks like an installation of this type.
	// Inaccessible paths report false rather than failing.
	IsValidHome(home string) bool

	// CreateSdk builds a fully set-up Sdk named name from a validated home.
	CreateSdk(name, home string) (*Sdk, error)
}

// Types is the ordered set of known SDK types. Lookup iterates in
// registration order.
type Types struct {
	types []Type
}

// NewTypes creates a set pre-populated with types, skipping nils and duplicates.
func NewTypes(types ...Type) *Types {
	ts := &Types{types: make([]Type, 0, len(types))}
	for _, t := range types {
		_ = ts.Register(t)
	}
	return ts
}

// Register appends t to the set.
func (ts *Types) Register(t Type) error {
	if t == nil {
		return ErrNilType
	}
	for _, existing := range ts.types {
		if existing.Name() == t.Name() {
			return ErrDuplicateType
		}
	}
	ts.types = append(ts.types, t)
	return nil
}

// Find returns the type with the given name.
func (ts *Types) Find(name string) (Type, bool) {
	for _, t := range ts.types {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// All returns the registered types in registration order.
func (ts *Types) All() []Type {
	out := make([]Type, len(ts.types))
	copy(out, ts.types)
	return out
}

// Names returns the registered type names in registration order.
func (ts *Types) Names() []string {
	names := make([]string, len(ts.types))
	for i, t := range ts.types {
		names[i] = t.Name()
	}
	return names
}
