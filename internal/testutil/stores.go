package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/infrastructure/sqlite"
	"github.com/zjrosen/sdktable/internal/infrastructure/yamlstore"
)

// NewSQLiteDB opens a migrated database in a temp dir, closed on cleanup.
func NewSQLiteDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "sdktable.db"), sqlite.WithBackup(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewYAMLStore returns a store over an in-memory filesystem, optionally
// seeded with content.
func NewYAMLStore(t *testing.T, content string) (*yamlstore.Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "/tables/sdk.table.yaml"
	if content != "" {
		require.NoError(t, fs.MkdirAll("/tables", 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return yamlstore.New(fs, path), fs
}
