// Package chain verifies ledger hash-chain integrity.
//
// Verification is strictly linear: it walks the entry sequence once and
// checks each recorded chain hash against the hash the chaining rule predicts
// from the entry's content hash and its predecessor. Two entries
// independently chained off the same predecessor form two linear chains that
// each verify cleanly; fork detection is a known limitation, and the appender
// is responsible for serializing seal computation with appends.
package chain

import (
	"github.com/sealog-project/sealog/internal/seal"
	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/model"
)

// Verify walks entries in order and recomputes every expected chain hash.
//
// On the first mismatch it stops immediately and reports BROKEN with the
// 1-based index of the broken entry; entries after a break are never
// evaluated, since their expected hashes would depend on the unverifiable
// chain hash of the broken entry. An empty sequence is vacuously VALID.
//
// Verification is read-only and deterministic. A broken chain is a report
// outcome, not an error; Verify fails only on malformed entries, which it
// rejects before any hash comparison.
func Verify(entries []model.LedgerEntry) (*model.VerificationReport, error) {
	for _, entry := range entries {
		if err := checkEntryShape(entry); err != nil {
			return nil, err
		}
	}

	report := &model.VerificationReport{
		Status:  model.StatusValid,
		Results: []model.EntryResult{},
	}

	expectedPrevious := model.Genesis
	for i, entry := range entries {
		expected := seal.Combine(entry.ContentHash, expectedPrevious)
		result := model.EntryResult{
			EntryID:       entry.EntryID,
			ExpectedChain: expected,
			RecordedChain: entry.ChainHash,
			Valid:         expected == entry.ChainHash,
		}
		report.Results = append(report.Results, result)

		if !result.Valid {
			report.Status = model.StatusBroken
			report.BrokenAt = i + 1
			return report, nil
		}

		expectedPrevious = entry.ChainHash
	}

	report.TotalEntries = len(entries)
	return report, nil
}

func checkEntryShape(entry model.LedgerEntry) error {
	if entry.ContentHash == "" {
		return errclass.ErrEntryMalformed.WithMessagef("entry %d: missing content_hash", entry.EntryID)
	}
	if entry.ChainHash == "" {
		return errclass.ErrEntryMalformed.WithMessagef("entry %d: missing chain_hash", entry.EntryID)
	}
	return nil
}
