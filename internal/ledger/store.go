// Package ledger persists and authors hash-chained ledger entries.
//
// The core sealer and verifier never touch storage; this package owns the
// append-only persistence and the authoring of new entries against the last
// recorded chain hash.
package ledger

import (
	"github.com/sealog-project/sealog/pkg/model"
)

// Store persists an ordered, append-only sequence of ledger entries.
//
// Load must return entries exactly in append order; the verifier's contract
// depends on it. Append must reject an entry whose PreviousHash does not
// match the store's current last chain hash, so that two appenders racing
// off the same predecessor cannot both land (a fork would verify cleanly
// entry-by-entry and is otherwise undetectable).
type Store interface {
	Append(entry *model.LedgerEntry) error
	Load() ([]model.LedgerEntry, error)
	LastChainHash() (model.HashValue, error)
	Close() error
}
