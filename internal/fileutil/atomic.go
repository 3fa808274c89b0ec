// Package fileutil holds small filesystem helpers shared by the config
// and store packages.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteAtomic replaces path with data by writing a temp file in the same
// directory and renaming it over the target. Missing directories are created.
func WriteAtomic(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = fsys.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = fsys.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fsys.Chmod(tempPath, perm); err != nil {
		_ = fsys.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := fsys.Rename(tempPath, path); err != nil {
		_ = fsys.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
