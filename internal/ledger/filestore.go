package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/jsonutil"
	"github.com/sealog-project/sealog/pkg/model"
)

// FileName is the ledger file inside the .sealog directory.
const FileName = "ledger.jsonl"

// FileStore stores the ledger as JSONL: one canonical-JSON entry per line,
// in append order. An exclusive flock is held across read-last and append so
// the linkage check and the write are one atomic step.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at path. The file is created on first
// append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append writes entry as a new ledger line. It fails with E_SEAL_CONFLICT if
// entry.PreviousHash does not match the current last chain hash.
func (s *FileStore) Append(entry *model.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("flock ledger: %w", err)
	}
	defer unlockFile(file)

	last, err := lastChainHashLocked(file)
	if err != nil {
		return err
	}
	if entry.PreviousHash != last {
		return errclass.ErrSealConflict.WithMessagef(
			"entry %d chained off %s but ledger head is %s", entry.EntryID, entry.PreviousHash, last)
	}

	line, err := jsonutil.CanonicalMarshal(entry)
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}

	if _, err := file.Seek(0, 2); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write ledger entry: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	return nil
}

// Load reads all entries in append order. A missing file is an empty ledger.
// A malformed line fails with E_LEDGER_CORRUPT: the ledger is the trust
// root, so a line that cannot be parsed is never silently skipped.
func (s *FileStore) Load() ([]model.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	var entries []model.LedgerEntry
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry model.LedgerEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, errclass.ErrLedgerCorrupt.WithMessagef("line %d: %v", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return entries, nil
}

// LastChainHash returns the chain hash of the last entry, or Genesis for an
// empty or missing ledger.
func (s *FileStore) LastChainHash() (model.HashValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Genesis, nil
		}
		return "", fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	return lastChainHashLocked(file)
}

// Close is a no-op for the file store; every operation opens and closes the
// file itself.
func (s *FileStore) Close() error { return nil }

func lastChainHashLocked(file *os.File) (model.HashValue, error) {
	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("seek to start: %w", err)
	}

	last := model.Genesis
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry model.LedgerEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return "", errclass.ErrLedgerCorrupt.WithMessagef("line %d: %v", lineNo, err)
		}
		last = entry.ChainHash
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan ledger: %w", err)
	}
	return last, nil
}
