// Package sqlite is the SQLite backend for the SDK table. The schema is
// versioned with golang-migrate from the embedded migrations directory.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/store"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DB is an open table database.
type DB struct {
	conn *sql.DB
	path string
	sdks *sdkRepository
}

var _ store.Store = (*DB)(nil)

type options struct {
	backup bool
}

// Option configures NewDB.
type Option func(*options)

// WithBackup controls the pre-migration copy to <path>.bak. On by default.
func WithBackup(enabled bool) Option {
	return func(o *options) { o.backup = enabled }
}

// NewDB opens (creating if needed) the database at path and migrates it to
// the latest schema. An existing file is first copied to path + ".bak".
func NewDB(path string, opts ...Option) (*DB, error) {
	o := options{backup: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	if o.backup {
		if err := backupFile(path); err != nil {
			return nil, err
		}
	}

	dsn := "file:" + filepath.ToSlash(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatStore, "sqlite table opened", "path", path)
	return &DB{conn: conn, path: path, sdks: newSdkRepository(conn)}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	drv, err := newMigrateDriver(conn)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// backupFile copies path to path.bak when path exists.
func backupFile(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path is the configured database location
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening database for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) //nolint:gosec // G304: derived from the database path
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	return dst.Close()
}

// Path returns the database file location.
func (db *DB) Path() string {
	return db.path
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Load implements store.Store.
func (db *DB) Load(ctx context.Context) (store.Result, error) {
	return db.sdks.List(ctx)
}

// Save implements store.Store.
func (db *DB) Save(ctx context.Context, records []sdk.Record) error {
	return db.sdks.ReplaceAll(ctx, records)
}

// Close implements store.Store.
func (db *DB) Close() error {
	return db.conn.Close()
}
