// internal/store/sqlite.go
//
// SQLite-backed high-score slot.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Reading and upserting the slot row in the kv table.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numpuzzle/assets"
)

// SQLite keeps the slot as one row of the kv table.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (and creates if missing) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn, key string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, key: key}, nil
}

// Get reads the slot; no row reports ok=false.
func (s *SQLite) Get(ctx context.Context) (int, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, s.key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query high score: %w", err)
	}
	n, err := parseScore(text)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Set upserts the slot.
func (s *SQLite) Set(ctx context.Context, score int) error {
	text, err := formatScore(score)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET
            value = excluded.value,
            updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`,
		s.key, text,
	)
	if err != nil {
		return fmt.Errorf("upsert high score: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// openDB opens a SQLite file, creating its parent directory for relative
// paths like ./data/numpuzzle.db, with busy timeout and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases alive across queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded SQL scripts in lexical order.
//
// - Uses a _migrations table to track applied files.
// - Skips scripts already recorded.
// - Scripts containing BEGIN TRANSACTION manage their own transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		if strings.Contains(strings.ToUpper(m.SQL), "BEGIN TRANSACTION") {
			if _, err := db.ExecContext(ctx, m.SQL); err != nil {
				return fmt.Errorf("apply %s: %w", m.Name, err)
			}
			if _, err := db.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
				return fmt.Errorf("record %s: %w", m.Name, err)
			}
			log.Info().Str("migration", m.Name).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}
