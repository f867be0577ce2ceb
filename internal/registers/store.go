// Package registers provides a durable, cached register bank backing the
// Yank/Put events emitted by vikey.Parser.
package registers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/vikey/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS registers (
	name TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	linewise INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a SQLite-backed table of named register contents.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the SQLite database at path and
// ensures the registers table exists.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating register db directory: %w", err)
		}
	}

	log.Debug(log.CatRegisters, "opening register database", "path", path)
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatRegisters, "failed to open register database", err, "path", path)
		return nil, fmt.Errorf("opening register database: %w", err)
	}
	if err := db.Ping(); err != nil {
		log.ErrorErr(log.CatRegisters, "failed to ping register database", err, "path", path)
		return nil, fmt.Errorf("pinging register database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating registers table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the persisted register content for name, if any.
func (s *Store) Get(name byte) (text string, linewise bool, ok bool, err error) {
	row := s.db.QueryRow(`SELECT text, linewise FROM registers WHERE name = ?`, string(name))
	var lw int
	switch scanErr := row.Scan(&text, &lw); scanErr {
	case nil:
		return text, lw != 0, true, nil
	case sql.ErrNoRows:
		return "", false, false, nil
	default:
		return "", false, false, fmt.Errorf("reading register %q: %w", string(name), scanErr)
	}
}

// Set writes (inserting or replacing) a register's content.
func (s *Store) Set(name byte, text string, linewise bool, updatedAt string) error {
	lw := 0
	if linewise {
		lw = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO registers (name, text, linewise, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET text = excluded.text, linewise = excluded.linewise, updated_at = excluded.updated_at`,
		string(name), text, lw, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("writing register %q: %w", string(name), err)
	}
	return nil
}
