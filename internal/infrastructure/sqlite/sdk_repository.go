package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/sdk"
	"github.com/zjrosen/sdktable/internal/store"
)

const sdkColumns = `position, name, type, home, version, attributes`

// sdkRepository reads and writes the sdks table.
type sdkRepository struct {
	db *sql.DB
}

func newSdkRepository(db *sql.DB) *sdkRepository {
	return &sdkRepository{db: db}
}

func scanSdk(scanner interface{ Scan(...any) error }) (*SdkModel, error) {
	var m SdkModel
	err := scanner.Scan(&m.Position, &m.Name, &m.Type, &m.Home, &m.Version, &m.Attributes)
	return &m, err
}

// List returns all rows in position order. Rows that cannot be turned into
// records are reported in Skipped.
func (r *sdkRepository) List(ctx context.Context) (store.Result, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sdkColumns+` FROM sdks ORDER BY position, rowid`)
	if err != nil {
		return store.Result{}, fmt.Errorf("failed to list sdks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result store.Result
	for i := 0; rows.Next(); i++ {
		m, err := scanSdk(rows)
		if err != nil {
			return store.Result{}, fmt.Errorf("failed to scan sdk: %w", err)
		}
		rec, err := m.toRecord()
		if err != nil {
			log.Warn(log.CatStore, "skipping sdk row", "position", m.Position, "name", m.Name, "error", err)
			result.Skipped = append(result.Skipped, sdk.RecordError{Index: i, Name: m.Name, Err: err})
			continue
		}
		result.Append(i, rec)
	}
	if err := rows.Err(); err != nil {
		return store.Result{}, fmt.Errorf("failed to list sdks: %w", err)
	}
	return result, nil
}

// ReplaceAll swaps the stored rows for records in one transaction.
func (r *sdkRepository) ReplaceAll(ctx context.Context, records []sdk.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sdks`); err != nil {
		return fmt.Errorf("failed to clear sdks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sdks (`+sdkColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		m, err := toSdkModel(i, rec)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, m.Position, m.Name, m.Type, m.Home, m.Version, m.Attributes); err != nil {
			return fmt.Errorf("failed to insert sdk %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sdks: %w", err)
	}
	log.Debug(log.CatStore, "sqlite table saved", "records", len(records))
	return nil
}
