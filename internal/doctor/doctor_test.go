package doctor_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealog-project/sealog/internal/doctor"
	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/internal/repo"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

func initWorkspace(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	_, err := repo.Init(root, "proj")
	require.NoError(t, err)
	return root
}

func sealOnce(t *testing.T, root string) {
	t.Helper()
	doc := filepath.Join(root, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte("state"), 0644))

	store, err := ledger.Open(root, model.StoreFile)
	require.NoError(t, err)
	defer store.Close()

	_, err = ledger.NewAuthor(store).SealAndAppend(
		[]model.DocumentSource{{Path: doc}}, "session", "")
	require.NoError(t, err)
}

func TestCheck_HealthyWorkspace(t *testing.T) {
	root := initWorkspace(t)
	sealOnce(t, root)

	result, err := doctor.NewDoctor(root).Check(true)
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Empty(t, result.Findings)
}

func TestCheck_MissingFormatVersion(t *testing.T) {
	root := initWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(root, ".sealog", "format_version")))

	result, err := doctor.NewDoctor(root).Check(false)
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.NotEmpty(t, result.Findings)
	assert.Equal(t, "format", result.Findings[0].Category)
}

func TestCheck_MissingSourceIsWarning(t *testing.T) {
	root := initWorkspace(t)

	cfg, err := config.Load(root)
	require.NoError(t, err)
	cfg.Sources = []model.DocumentSource{{Path: "absent.md"}}
	require.NoError(t, config.Save(root, cfg))

	result, err := doctor.NewDoctor(root).Check(false)
	require.NoError(t, err)
	// A missing source is a warning, not a health failure.
	assert.True(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "sources", result.Findings[0].Category)
	assert.Equal(t, "warning", result.Findings[0].Severity)
}

func TestCheck_CorruptLedger(t *testing.T) {
	root := initWorkspace(t)
	sealOnce(t, root)

	ledgerPath := filepath.Join(root, ".sealog", ledger.FileName)
	f, err := os.OpenFile(ledgerPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	result, err := doctor.NewDoctor(root).Check(false)
	require.NoError(t, err)
	assert.False(t, result.Healthy)
}

func TestCheck_StrictDetectsBrokenChain(t *testing.T) {
	root := initWorkspace(t)
	sealOnce(t, root)
	sealOnce(t, root)

	// Tamper with the first entry's content hash.
	ledgerPath := filepath.Join(root, ".sealog", ledger.FileName)
	data, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	lines := strings.SplitN(string(data), "\n", 2)
	require.Len(t, lines, 2)

	var entry model.LedgerEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	entry.ContentHash = model.HashValue(strings.Repeat("ab", 32))
	tampered, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ledgerPath, append(append(tampered, '\n'), []byte(lines[1])...), 0644))

	result, err := doctor.NewDoctor(root).Check(true)
	require.NoError(t, err)
	assert.False(t, result.Healthy)

	var chainFinding bool
	for _, f := range result.Findings {
		if f.Category == "chain" {
			chainFinding = true
		}
	}
	assert.True(t, chainFinding, "expected a chain finding")
}
