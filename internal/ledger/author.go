package ledger

import (
	"fmt"
	"time"

	"github.com/sealog-project/sealog/internal/seal"
	"github.com/sealog-project/sealog/pkg/logging"
	"github.com/sealog-project/sealog/pkg/model"
	"github.com/sealog-project/sealog/pkg/pathutil"
)

// Author builds and appends new ledger entries. It is the single appender:
// it reads the ledger head, seals the document set against it, and appends
// the resulting entry. The store's linkage check turns a lost race with
// another appender into E_SEAL_CONFLICT instead of a silent fork.
type Author struct {
	store Store
}

// NewAuthor creates an Author over store.
func NewAuthor(store Store) *Author {
	return &Author{store: store}
}

// SealAndAppend seals sources against the current ledger head and appends
// the new entry. Entry IDs are 1-based and monotonically increasing.
func (a *Author) SealAndAppend(sources []model.DocumentSource, phase, decision string) (*model.LedgerEntry, error) {
	if err := pathutil.ValidateLabel("phase", phase); err != nil {
		return nil, err
	}
	if decision != "" {
		if err := pathutil.ValidateLabel("decision", decision); err != nil {
			return nil, err
		}
	}

	existing, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	previous, err := a.store.LastChainHash()
	if err != nil {
		return nil, fmt.Errorf("read ledger head: %w", err)
	}

	result, err := seal.Seal(sources, previous)
	if err != nil {
		return nil, err
	}

	entry := &model.LedgerEntry{
		EntryID:      int64(len(existing)) + 1,
		Timestamp:    time.Now().UTC(),
		Phase:        phase,
		ContentHash:  result.ContentHash,
		PreviousHash: previous,
		ChainHash:    result.ChainHash,
		Decision:     decision,
	}

	if err := a.store.Append(entry); err != nil {
		return nil, err
	}

	logging.Info("sealed ledger entry", map[string]any{
		"entry_id":   entry.EntryID,
		"phase":      entry.Phase,
		"chain_hash": string(entry.ChainHash),
	})
	return entry, nil
}
