package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sealog-project/sealog/internal/ledger/sqlitestore"
	"github.com/sealog-project/sealog/internal/repo"
	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/model"
)

// Open creates a ledger store for the configured backend. An empty store
// type selects the file backend.
func Open(workspaceRoot string, storeType model.StoreType) (Store, error) {
	sealogDir := filepath.Join(workspaceRoot, repo.SealogDirName)
	switch storeType {
	case model.StoreFile, "":
		return NewFileStore(filepath.Join(sealogDir, FileName)), nil
	case model.StoreSQLite:
		if err := os.MkdirAll(sealogDir, 0755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
		return sqlitestore.Open(filepath.Join(sealogDir, sqlitestore.FileName))
	default:
		return nil, errclass.ErrStoreUnsupported.WithMessagef("unknown store backend: %s", storeType)
	}
}
