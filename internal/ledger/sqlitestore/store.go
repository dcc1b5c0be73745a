// Package sqlitestore provides a SQLite-backed ledger store.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/model"
)

// FileName is the ledger database inside the .sealog directory.
const FileName = "ledger.db"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	entry_id      INTEGER PRIMARY KEY,
	timestamp     TEXT NOT NULL,
	phase         TEXT NOT NULL,
	content_hash  TEXT NOT NULL,
	previous_hash TEXT NOT NULL,
	chain_hash    TEXT NOT NULL,
	decision      TEXT NOT NULL DEFAULT ''
);`

// Store persists ledger entries in SQLite, ordered by entry_id.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite ledger store and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite ledger: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create entries table: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append inserts entry after checking its linkage against the current last
// chain hash, inside one transaction.
func (s *Store) Append(entry *model.LedgerEntry) error {
	tx, err := s.sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	last := model.Genesis
	row := tx.QueryRow(`SELECT chain_hash FROM entries ORDER BY entry_id DESC LIMIT 1`)
	var lastStr string
	switch err := row.Scan(&lastStr); {
	case err == nil:
		last = model.HashValue(lastStr)
	case errors.Is(err, sql.ErrNoRows):
		// empty ledger
	default:
		return fmt.Errorf("read ledger head: %w", err)
	}

	if entry.PreviousHash != last {
		return errclass.ErrSealConflict.WithMessagef(
			"entry %d chained off %s but ledger head is %s", entry.EntryID, entry.PreviousHash, last)
	}

	_, err = tx.Exec(
		`INSERT INTO entries (entry_id, timestamp, phase, content_hash, previous_hash, chain_hash, decision)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.EntryID,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		entry.Phase,
		string(entry.ContentHash),
		string(entry.PreviousHash),
		string(entry.ChainHash),
		entry.Decision,
	)
	if err != nil {
		if isConstraintErr(err) {
			return errclass.ErrSealConflict.WithMessagef("entry %d already exists", entry.EntryID)
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Load returns all entries ordered by entry_id ascending, which is append
// order for a well-formed ledger.
func (s *Store) Load() ([]model.LedgerEntry, error) {
	rows, err := s.sqlDB.Query(
		`SELECT entry_id, timestamp, phase, content_hash, previous_hash, chain_hash, decision
		 FROM entries ORDER BY entry_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		var (
			entry   model.LedgerEntry
			ts      string
			content string
			prev    string
			chain   string
		)
		if err := rows.Scan(&entry.EntryID, &ts, &entry.Phase, &content, &prev, &chain, &entry.Decision); err != nil {
			return nil, errclass.ErrLedgerCorrupt.WithMessagef("scan entry: %v", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, errclass.ErrLedgerCorrupt.WithMessagef("entry %d: bad timestamp %q", entry.EntryID, ts)
		}
		entry.Timestamp = parsed
		entry.ContentHash = model.HashValue(content)
		entry.PreviousHash = model.HashValue(prev)
		entry.ChainHash = model.HashValue(chain)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

// LastChainHash returns the chain hash of the highest entry_id, or Genesis
// for an empty ledger.
func (s *Store) LastChainHash() (model.HashValue, error) {
	row := s.sqlDB.QueryRow(`SELECT chain_hash FROM entries ORDER BY entry_id DESC LIMIT 1`)
	var chain string
	switch err := row.Scan(&chain); {
	case err == nil:
		return model.HashValue(chain), nil
	case errors.Is(err, sql.ErrNoRows):
		return model.Genesis, nil
	default:
		return "", fmt.Errorf("read ledger head: %w", err)
	}
}

func isConstraintErr(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3lib.SQLITE_CONSTRAINT ||
			code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY ||
			code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
