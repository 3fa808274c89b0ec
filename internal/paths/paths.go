// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// TableFileName is the file used when a directory is given for the table.
const TableFileName = "sdk.table.yaml"

// ResolveTableFile resolves the YAML table file from user input.
//
// Input normalization:
//   - "" -> "~/.config/sdktable/sdk.table.yaml"
//   - "~/x.yaml" -> "$HOME/x.yaml"
//   - "/path/to/dir" (an existing directory) -> "/path/to/dir/sdk.table.yaml"
//   - "/path/to/dir/" -> "/path/to/dir/sdk.table.yaml"
//   - anything else is cleaned and returned as a file path
func ResolveTableFile(path string) string {
	if path == "" {
		return DefaultTableFile()
	}

	trailingSep := strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/")
	path = filepath.Clean(ExpandHome(path))

	if trailingSep {
		return filepath.Join(path, TableFileName)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, TableFileName)
	}
	return path
}

// DefaultTableFile returns ~/.config/sdktable/sdk.table.yaml, falling back to
// the working directory when the home directory is unknown.
func DefaultTableFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return TableFileName
	}
	return filepath.Join(home, ".config", "sdktable", TableFileName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
