// Package repo manages sealog workspace layout and discovery.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/fsutil"
	"github.com/sealog-project/sealog/pkg/pathutil"
	"github.com/sealog-project/sealog/pkg/uuidutil"
)

const (
	FormatVersion     = 1
	SealogDirName     = ".sealog"
	FormatVersionFile = "format_version"
	LedgerIDFile      = "ledger_id"
)

// Workspace represents an initialized sealog workspace.
type Workspace struct {
	Root          string
	FormatVersion int
	LedgerID      string
}

// SealogDir returns the metadata directory of the workspace.
func (w *Workspace) SealogDir() string {
	return filepath.Join(w.Root, SealogDirName)
}

// Init creates a new sealog workspace at path.
func Init(path string, name string) (*Workspace, error) {
	if err := pathutil.ValidateName(name); err != nil {
		return nil, err
	}

	sealogDir := filepath.Join(path, SealogDirName)
	if err := os.MkdirAll(sealogDir, 0755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", sealogDir, err)
	}

	if err := os.WriteFile(filepath.Join(sealogDir, FormatVersionFile), []byte("1\n"), 0644); err != nil {
		return nil, fmt.Errorf("write format_version: %w", err)
	}

	ledgerID := uuidutil.NewV4()
	if err := os.WriteFile(filepath.Join(sealogDir, LedgerIDFile), []byte(ledgerID+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("write ledger_id: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	if err := fsutil.FsyncDir(path); err != nil {
		return nil, fmt.Errorf("fsync workspace root: %w", err)
	}

	return &Workspace{
		Root:          path,
		FormatVersion: FormatVersion,
		LedgerID:      ledgerID,
	}, nil
}

// Discover walks up from cwd to find the workspace root (directory
// containing .sealog/).
func Discover(cwd string) (*Workspace, error) {
	path := cwd
	for {
		sealogDir := filepath.Join(path, SealogDirName)
		if info, err := os.Stat(sealogDir); err == nil && info.IsDir() {
			version, err := readFormatVersion(sealogDir)
			if err != nil {
				return nil, err
			}
			if version > FormatVersion {
				return nil, errclass.ErrFormatUnsupported.WithMessagef(
					"format version %d > supported %d", version, FormatVersion)
			}
			ledgerID, _ := readLedgerID(sealogDir)
			return &Workspace{
				Root:          path,
				FormatVersion: version,
				LedgerID:      ledgerID,
			}, nil
		}

		parent := filepath.Dir(path)
		if parent == path {
			return nil, fmt.Errorf("no sealog workspace found (no .sealog/ in parent directories)")
		}
		path = parent
	}
}

func readFormatVersion(sealogDir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(sealogDir, FormatVersionFile))
	if err != nil {
		return 0, fmt.Errorf("read format_version: %w", err)
	}
	var version int
	if _, err := fmt.Sscanf(string(data), "%d", &version); err != nil {
		return 0, fmt.Errorf("parse format_version: %w", err)
	}
	return version, nil
}

func readLedgerID(sealogDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(sealogDir, LedgerIDFile))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
