package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealog-project/sealog/pkg/model"
)

func TestLedgerEntry_JSONRoundTrip(t *testing.T) {
	entry := model.LedgerEntry{
		EntryID:      3,
		Timestamp:    time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		Phase:        "review",
		ContentHash:  "aa",
		PreviousHash: "bb",
		ChainHash:    "cc",
		Decision:     "ship",
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded model.LedgerEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestLedgerEntry_EmptyDecisionOmitted(t *testing.T) {
	data, err := json.Marshal(model.LedgerEntry{EntryID: 1, ContentHash: "aa", PreviousHash: "GENESIS", ChainHash: "cc"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "decision")
}

func TestVerificationReport_BrokenAtOmittedWhenValid(t *testing.T) {
	report := model.VerificationReport{
		Status:       model.StatusValid,
		TotalEntries: 2,
		Results:      []model.EntryResult{},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "broken_at")
	assert.Contains(t, string(data), `"total_entries":2`)
}

func TestGenesisSentinel(t *testing.T) {
	// The sentinel must never look like a real digest (digests are 64 hex chars).
	assert.Equal(t, model.HashValue("GENESIS"), model.Genesis)
	assert.Len(t, string(model.Genesis), 7)
}
