package testutil

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/sdk/sdktypes"
)

func TestJavaHome_IsRecognised(t *testing.T) {
	fs := afero.NewMemMapFs()
	home := JavaHome(t, fs, "/opt/zulu-8", "1.8.0_392", map[string]string{"IMPLEMENTOR": "Azul Systems, Inc."})

	java := sdktypes.NewJava(fs, sdktypes.NewMetadataReader(fs, 0))
	require.True(t, java.IsValidHome(home))

	s, err := java.CreateSdk("zulu-8", home)
	require.NoError(t, err)
	require.Equal(t, "1.8.0_392", s.Version())
	vendor, ok := s.Attribute("vendor")
	require.True(t, ok)
	require.Equal(t, "Azul Systems, Inc.", vendor)
}

func TestGoHome_IsRecognised(t *testing.T) {
	fs := afero.NewMemMapFs()
	home := GoHome(t, fs, "/usr/local/go", "go1.24.9")

	goType := sdktypes.NewGo(fs, sdktypes.NewMetadataReader(fs, 0))
	require.True(t, goType.IsValidHome(home))
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(t).WithStandardSdks()

	records := b.Records()
	require.Len(t, records, 4)
	require.Equal(t, "corretto-17", records[0].Name)
	require.Equal(t, "JavaSDK", records[0].Type)
	require.Equal(t, "GoSDK", records[3].Type)
	require.Equal(t, "Amazon", records[0].Attributes["vendor"])

	records[0].Name = "mutated"
	require.Equal(t, "corretto-17", b.Records()[0].Name)

	sdks := b.Sdks()
	require.Len(t, sdks, 4)
	require.Equal(t, "/usr/local/go", sdks[3].HomePath())
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)

	records := NewBuilder(t).WithStandardSdks().Records()
	require.NoError(t, db.Save(context.Background(), records))

	res, err := db.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, records, res.Records)
}

func TestNewYAMLStore(t *testing.T) {
	st, _ := NewYAMLStore(t, "version: 1\nsdks:\n  - name: jdk-11\n    type: JavaSDK\n")

	res, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	require.Equal(t, "jdk-11", res.Records[0].Name)
}
