// Package testutil provides fixtures for tests: fake SDK installations on an
// afero filesystem, record builders and on-disk stores.
package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// JavaHome lays out a minimal JDK at dir: bin/javac and a release file
// carrying JAVA_VERSION plus any extra properties.
func JavaHome(t *testing.T, fs afero.Fs, dir, version string, props map[string]string) string {
	t.Helper()
	writeFile(t, fs, filepath.Join(dir, "bin", "javac"), "#!/bin/sh\n")

	lines := []string{fmt.Sprintf("JAVA_VERSION=%q", version)}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%q", k, props[k]))
	}
	writeFile(t, fs, filepath.Join(dir, "release"), strings.Join(lines, "\n")+"\n")
	return dir
}

// GoHome lays out a minimal Go toolchain at dir: bin/go and a VERSION file.
func GoHome(t *testing.T, fs afero.Fs, dir, version string) string {
	t.Helper()
	writeFile(t, fs, filepath.Join(dir, "bin", "go"), "#!/bin/sh\n")
	writeFile(t, fs, filepath.Join(dir, "VERSION"), version+"\ntime 2025-01-01T00:00:00Z\n")
	return dir
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}
