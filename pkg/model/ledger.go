package model

import "time"

// LedgerEntry is a single record in the ledger (one JSONL line or one table
// row). Entries are immutable once appended.
//
// Invariants:
//   - ChainHash == sha256(ContentHash + PreviousHash) over the hex text
//   - PreviousHash of entry i equals ChainHash of entry i-1
//     (Genesis for the first entry)
type LedgerEntry struct {
	EntryID      int64     `json:"entry_id"`
	Timestamp    time.Time `json:"timestamp"`
	Phase        string    `json:"phase"`
	ContentHash  HashValue `json:"content_hash"`
	PreviousHash HashValue `json:"previous_hash"`
	ChainHash    HashValue `json:"chain_hash"`
	Decision     string    `json:"decision,omitempty"`
}

// EntryResult is the per-entry outcome of chain verification.
type EntryResult struct {
	EntryID       int64     `json:"entry_id"`
	ExpectedChain HashValue `json:"expected_chain"`
	RecordedChain HashValue `json:"recorded_chain"`
	Valid         bool      `json:"valid"`
}

// VerificationReport summarizes a full verification walk. For a VALID run
// TotalEntries is the number of entries checked and Results covers all of
// them; for a BROKEN run BrokenAt is the 1-based index of the first broken
// entry and Results stops there.
type VerificationReport struct {
	Status       VerificationStatus `json:"status"`
	TotalEntries int                `json:"total_entries"`
	BrokenAt     int                `json:"broken_at,omitempty"`
	Results      []EntryResult      `json:"results"`
}
