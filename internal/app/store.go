package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/zjrosen/sdktable/internal/config"
	"github.com/zjrosen/sdktable/internal/infrastructure/sqlite"
	"github.com/zjrosen/sdktable/internal/infrastructure/yamlstore"
	"github.com/zjrosen/sdktable/internal/paths"
	"github.com/zjrosen/sdktable/internal/store"
)

// OpenStore opens the backend named by backend at path. The yaml backend
// resolves path through paths.ResolveTableFile; sqlite uses it as the
// database file.
func OpenStore(fsys afero.Fs, backend, path string, backup bool) (store.Store, error) {
	switch backend {
	case "", config.BackendYAML:
		return yamlstore.New(fsys, paths.ResolveTableFile(path)), nil
	case config.BackendSQLite:
		db, err := sqlite.NewDB(paths.ExpandHome(path), sqlite.WithBackup(backup))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func (a *App) storePath() string {
	if a.backend == config.BackendSQLite {
		return a.cfg.Table.SQLitePath
	}
	return a.cfg.Table.Path
}

// StorePath returns the file behind the store, or "" for a store that has none.
func (a *App) StorePath() string {
	if p, ok := a.store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// Export writes the current table to a fresh store of the given backend
// at path. The application's own store is not touched.
func (a *App) Export(ctx context.Context, backend, path string) error {
	st, err := OpenStore(a.fs, backend, path, false)
	if err != nil {
		return err
	}
	saveErr := a.saveRecords(ctx, st, backend, a.Records())
	if err := st.Close(); err != nil && saveErr == nil {
		return fmt.Errorf("closing export store: %w", err)
	}
	return saveErr
}
