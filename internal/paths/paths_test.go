package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTableFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("version: 1\n"), 0o600))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty uses default", input: "", want: filepath.Join(home, ".config", "sdktable", TableFileName)},
		{name: "existing directory", input: dir, want: filepath.Join(dir, TableFileName)},
		{name: "trailing separator", input: "/does/not/exist/", want: filepath.Join("/does/not/exist", TableFileName)},
		{name: "existing file", input: file, want: file},
		{name: "missing file", input: filepath.Join(dir, "new.yaml"), want: filepath.Join(dir, "new.yaml")},
		{name: "unclean path", input: dir + "/./sub/../custom.yaml", want: file},
		{name: "home relative", input: "~/tables/sdk.yaml", want: filepath.Join(home, "tables", "sdk.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveTableFile(tt.input))
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	require.Equal(t, "/home/tester", ExpandHome("~"))
	require.Equal(t, "/home/tester/x", ExpandHome("~/x"))
	require.Equal(t, "~other/x", ExpandHome("~other/x"))
	require.Equal(t, "/abs", ExpandHome("/abs"))
}
