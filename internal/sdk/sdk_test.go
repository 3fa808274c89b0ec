package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New("jdk-11", "JavaSDK")

	require.Equal(t, "jdk-11", s.Name())
	require.Equal(t, "JavaSDK", s.TypeName())
	require.Empty(t, s.HomePath())
	require.Empty(t, s.Version())
	require.Empty(t, s.Attributes())
}

func TestSdk_SetAttribute(t *testing.T) {
	s := New("jdk-11", "JavaSDK")

	s.SetAttribute("vendor", "Amazon")
	v, ok := s.Attribute("vendor")
	require.True(t, ok)
	require.Equal(t, "Amazon", v)

	s.SetAttribute("vendor", "")
	_, ok = s.Attribute("vendor")
	require.False(t, ok, "empty value should remove the attribute")
}

func TestSdk_AttributesIsCopy(t *testing.T) {
	s := New("jdk-11", "JavaSDK")
	s.SetAttribute("vendor", "Amazon")

	attrs := s.Attributes()
	attrs["vendor"] = "Oracle"

	v, _ := s.Attribute("vendor")
	require.Equal(t, "Amazon", v)
}

func TestSdk_AttributeKeysSorted(t *testing.T) {
	s := New("go", "GoSDK")
	s.SetAttribute("os", "linux")
	s.SetAttribute("arch", "amd64")
	s.SetAttribute("goroot", "/usr/local/go")

	require.Equal(t, []string{"arch", "goroot", "os"}, s.AttributeKeys())
}

func TestSdk_CopyToKeepsIdentity(t *testing.T) {
	original := New("jdk-11", "JavaSDK")
	original.SetHomePath("/opt/jdk11")
	ref := original

	modified := original.Clone()
	modified.SetName("jdk-11-re")
	modified.SetVersion("11.0.22")
	modified.SetAttribute("vendor", "Eclipse Adoptium")

	modified.CopyTo(original)

	require.Same(t, ref, original)
	require.Equal(t, "jdk-11-re", ref.Name())
	require.Equal(t, "11.0.22", ref.Version())
	require.Equal(t, "/opt/jdk11", ref.HomePath())

	// Later edits to modified must not leak into original
	modified.SetAttribute("vendor", "Azul")
	v, _ := original.Attribute("vendor")
	require.Equal(t, "Eclipse Adoptium", v)
}

func TestSdk_CloneIsIndependent(t *testing.T) {
	s := New("jdk-17", "JavaSDK")
	s.SetAttribute("os", "linux")

	c := s.Clone()
	require.NotSame(t, s, c)

	c.SetName("other")
	c.SetAttribute("os", "darwin")

	require.Equal(t, "jdk-17", s.Name())
	v, _ := s.Attribute("os")
	require.Equal(t, "linux", v)
}
