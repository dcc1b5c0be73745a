package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/chain"
	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/pkg/color"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify ledger chain integrity",
	Long: `Verify ledger chain integrity.

Recomputes the expected chain hash of every entry from its content hash and
its predecessor's chain hash, and reports the first divergence. An empty
ledger verifies as VALID.

Exit status is 1 when the chain is broken.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()

		cfg, err := config.Load(w.Root)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		store, err := ledger.Open(w.Root, cfg.Store)
		if err != nil {
			fmtErr("open ledger store: %v", err)
			os.Exit(1)
		}
		defer store.Close()

		entries, err := store.Load()
		if err != nil {
			fmtErr("load ledger: %v", err)
			os.Exit(1)
		}

		report, err := chain.Verify(entries)
		if err != nil {
			fmtErr("verify: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(report)
			if report.Status == model.StatusBroken {
				os.Exit(1)
			}
			return
		}

		for _, res := range report.Results {
			status := color.Success("OK")
			if !res.Valid {
				status = color.Error("BROKEN")
			}
			fmt.Printf("%4d  %s  %s\n", res.EntryID, color.Hash(shortHash(res.RecordedChain)), status)
		}

		if report.Status == model.StatusBroken {
			fmt.Printf("Chain %s at entry %d\n", color.Error("BROKEN"), report.BrokenAt)
			os.Exit(1)
		}
		fmt.Printf("Chain %s (%d entries)\n", color.Success("VALID"), report.TotalEntries)
	},
}

func shortHash(h model.HashValue) string {
	if len(h) > 12 {
		return string(h[:12])
	}
	return string(h)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
