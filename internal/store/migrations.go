package store

import (
	"context"
	"database/sql"
	"log/slog"
)

// migration represents a single schema migration applied after schemaSQL.
type migration struct {
	version     int
	description string
	apply       func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations beyond the base
// schema. New migrations are appended at the end; never modify existing
// entries.
var migrations = []migration{
	{
		version:     1,
		description: "base schema (applied via schemaSQL)",
		apply:       func(tx *sql.Tx) error { return nil },
	},
	{
		version:     2,
		description: "add word_count default to corpus_chunks for pre-migration rows",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec("UPDATE corpus_chunks SET word_count = 0 WHERE word_count IS NULL")
			return err
		},
	},
}

// Migrate runs every migration newer than the database's recorded version.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}

	var current int
	row := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&current); err == sql.ErrNoRows {
		current = 0
	} else if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		slog.Debug("applied migration", "version", m.version, "description", m.description)
		current = m.version
	}
	return nil
}
