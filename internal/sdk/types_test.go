package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubType struct {
	name string
}

func (s stubType) Name() string                 { return s.name }
func (s stubType) IsValidHome(home string) bool { return home != "" }
func (s stubType) CreateSdk(name, home string) (*Sdk, error) {
	sdk := New(name, s.name)
	sdk.SetHomePath(home)
	return sdk, nil
}

func TestTypes_Register(t *testing.T) {
	ts := NewTypes()

	require.NoError(t, ts.Register(stubType{name: "JavaSDK"}))
	require.NoError(t, ts.Register(stubType{name: "GoSDK"}))

	require.Equal(t, []string{"JavaSDK", "GoSDK"}, ts.Names())
}

func TestTypes_RegisterNil(t *testing.T) {
	ts := NewTypes()

	require.ErrorIs(t, ts.Register(nil), ErrNilType)
	require.Empty(t, ts.All())
}

func TestTypes_RegisterDuplicate(t *testing.T) {
	ts := NewTypes(stubType{name: "JavaSDK"})

	err := ts.Register(stubType{name: "JavaSDK"})

	require.ErrorIs(t, err, ErrDuplicateType)
	require.Len(t, ts.All(), 1)
}

func TestTypes_Find(t *testing.T) {
	ts := NewTypes(stubType{name: "JavaSDK"}, stubType{name: "GoSDK"})

	found, ok := ts.Find("GoSDK")
	require.True(t, ok)
	require.Equal(t, "GoSDK", found.Name())

	_, ok = ts.Find("PythonSDK")
	require.False(t, ok)
}

func TestTypes_AllIsCopy(t *testing.T) {
	ts := NewTypes(stubType{name: "JavaSDK"})

	all := ts.All()
	all[0] = stubType{name: "Hijacked"}

	require.Equal(t, []string{"JavaSDK"}, ts.Names())
}
