// Package state persists per-application permission overrides in a SQLite database.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Override is a single permission value that differs from its default.
type Override struct {
	UpdatedAt time.Time
	AppID     string
	Property  string
	Kind      string
	Value     string
}

// Store manages the SQLite database of overrides.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOverrides returns every override stored for appID, ordered by property.
func (s *Store) GetOverrides(appID string) ([]Override, error) {
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx, `
		SELECT app_id, property, kind, value, updated_at
		FROM overrides
		WHERE app_id = ?
		ORDER BY property
	`, appID)
	if err != nil {
		return nil, fmt.Errorf("querying overrides: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck,gosec // defer close is best-effort

	var out []Override
	for rows.Next() {
		var o Override
		var updatedAt string

		if err := rows.Scan(&o.AppID, &o.Property, &o.Kind, &o.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}

		o.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}

		out = append(out, o)
	}

	return out, rows.Err()
}

// SetOverride stores or replaces one override.
func (s *Store) SetOverride(appID, property, kind, value string) error {
	ctx := context.Background()
	if _, err := s.db.ExecContext(ctx, upsertOverride, appID, property, kind, value); err != nil {
		return fmt.Errorf("saving override: %w", err)
	}

	return nil
}

// DeleteOverride removes one override. Missing rows are not an error.
func (s *Store) DeleteOverride(appID, property string) error {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM overrides WHERE app_id = ? AND property = ?
	`, appID, property)
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}

	return nil
}

// ClearOverrides deletes all overrides for appID.
func (s *Store) ClearOverrides(appID string) error {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM overrides WHERE app_id = ?
	`, appID)
	if err != nil {
		return fmt.Errorf("clearing overrides: %w", err)
	}

	return nil
}

// ApplyChanges writes a batch of overrides and deletions for appID in one transaction.
func (s *Store) ApplyChanges(appID string, set []Override, deleted []string) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}

	for _, o := range set {
		if _, err := tx.ExecContext(ctx, upsertOverride, appID, o.Property, o.Kind, o.Value); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("saving override %s: %w", o.Property, err)
		}
	}

	for _, property := range deleted {
		if _, err := tx.ExecContext(ctx, `DELETE FROM overrides WHERE app_id = ? AND property = ?`, appID, property); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("deleting override %s: %w", property, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}

// ListApplications returns the IDs of applications with at least one override.
func (s *Store) ListApplications() ([]string, error) {
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT app_id FROM overrides ORDER BY app_id`)
	if err != nil {
		return nil, fmt.Errorf("querying applications: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck,gosec // defer close is best-effort

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

const upsertOverride = `
	INSERT INTO overrides (app_id, property, kind, value)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (app_id, property) DO UPDATE SET
		kind = excluded.kind,
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
`

// migrate runs schema migrations.
func (s *Store) migrate() error {
	currentVersion := s.getSchemaVersion()

	migrations := []func(*sql.Tx) error{
		migrateV1,
	}

	ctx := context.Background()
	for i := currentVersion; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if err := migrations[i](tx); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort on migration failure
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("updating schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("inserting schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, or 0 if the schema_version table doesn't exist.
func (s *Store) getSchemaVersion() int {
	ctx := context.Background()
	var tableName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&tableName)
	if err != nil {
		return 0
	}

	var version int
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version); err != nil {
		return 0
	}

	return version
}

// parseTime parses a timestamp string from SQLite, trying multiple formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

// migrateV1 creates the initial schema.
func migrateV1(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS overrides (
			app_id     TEXT NOT NULL,
			property   TEXT NOT NULL,
			kind       TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (app_id, property)
		)`,
	}

	ctx := context.Background()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	return nil
}
