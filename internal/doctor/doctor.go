// Package doctor performs workspace health checks.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sealog-project/sealog/internal/chain"
	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/internal/repo"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

// Doctor performs workspace health checks.
type Doctor struct {
	root string
}

// NewDoctor creates a doctor for the workspace at root.
func NewDoctor(root string) *Doctor {
	return &Doctor{root: root}
}

// Check runs all diagnostic checks. With strict set, the full chain is
// verified as well, which reads every configured store entry.
func (d *Doctor) Check(strict bool) (*Result, error) {
	result := &Result{Healthy: true}

	d.checkFormatVersion(result)
	cfg := d.checkConfig(result)
	if cfg != nil {
		d.checkSources(result, cfg)
		entries := d.checkLedger(result, cfg)
		if strict && entries != nil {
			d.checkChain(result, entries)
		}
	}

	return result, nil
}

func (d *Doctor) checkFormatVersion(result *Result) {
	versionPath := filepath.Join(d.root, repo.SealogDirName, repo.FormatVersionFile)
	data, err := os.ReadFile(versionPath)
	if err != nil {
		d.fail(result, Finding{
			Category:    "format",
			Description: "format_version file missing or unreadable",
			Severity:    "critical",
			Path:        versionPath,
		})
		return
	}

	var version int
	fmt.Sscanf(string(data), "%d", &version)
	if version > repo.FormatVersion {
		d.fail(result, Finding{
			Category:    "format",
			Description: fmt.Sprintf("format version %d > supported %d", version, repo.FormatVersion),
			Severity:    "critical",
		})
	}
}

func (d *Doctor) checkConfig(result *Result) *config.Config {
	cfg, err := config.Load(d.root)
	if err != nil {
		d.fail(result, Finding{
			Category:    "config",
			Description: fmt.Sprintf("cannot load config: %v", err),
			Severity:    "error",
		})
		return nil
	}
	switch cfg.Store {
	case model.StoreFile, model.StoreSQLite, "":
	default:
		d.fail(result, Finding{
			Category:    "config",
			Description: fmt.Sprintf("unknown store backend %q", cfg.Store),
			Severity:    "error",
		})
	}
	return cfg
}

func (d *Doctor) checkSources(result *Result, cfg *config.Config) {
	for _, src := range cfg.ResolveSources(d.root) {
		info, err := os.Stat(src.Path)
		if err != nil {
			result.Findings = append(result.Findings, Finding{
				Category:    "sources",
				Description: "configured document source missing; the next seal will fail",
				Severity:    "warning",
				Path:        src.Path,
			})
			continue
		}
		if src.Dir != info.IsDir() {
			result.Findings = append(result.Findings, Finding{
				Category:    "sources",
				Description: "source kind mismatch (file configured as dir or vice versa)",
				Severity:    "warning",
				Path:        src.Path,
			})
		}
	}
}

func (d *Doctor) checkLedger(result *Result, cfg *config.Config) []model.LedgerEntry {
	store, err := ledger.Open(d.root, cfg.Store)
	if err != nil {
		d.fail(result, Finding{
			Category:    "ledger",
			Description: fmt.Sprintf("cannot open ledger store: %v", err),
			Severity:    "critical",
		})
		return nil
	}
	defer store.Close()

	entries, err := store.Load()
	if err != nil {
		d.fail(result, Finding{
			Category:    "ledger",
			Description: fmt.Sprintf("cannot load ledger: %v", err),
			Severity:    "critical",
		})
		return nil
	}
	return entries
}

func (d *Doctor) checkChain(result *Result, entries []model.LedgerEntry) {
	report, err := chain.Verify(entries)
	if err != nil {
		d.fail(result, Finding{
			Category:    "chain",
			Description: fmt.Sprintf("cannot verify chain: %v", err),
			Severity:    "critical",
		})
		return
	}
	if report.Status == model.StatusBroken {
		d.fail(result, Finding{
			Category:    "chain",
			Description: fmt.Sprintf("hash chain broken at entry %d", report.BrokenAt),
			Severity:    "critical",
		})
	}
}

func (d *Doctor) fail(result *Result, finding Finding) {
	result.Findings = append(result.Findings, finding)
	result.Healthy = false
}
