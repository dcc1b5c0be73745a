package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/pkg/color"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

var (
	historyLimit       int
	historyPhaseFilter string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show ledger entries, newest first",
	Long: `Show ledger entries, newest first.

Examples:
  sealog history              # all entries
  sealog history -n 10        # last 10 entries
  sealog history --phase dev  # entries for one phase`,
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

		var shown []model.LedgerEntry
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if historyPhaseFilter != "" && !strings.EqualFold(entry.Phase, historyPhaseFilter) {
				continue
			}
			shown = append(shown, entry)
			if historyLimit > 0 && len(shown) >= historyLimit {
				break
			}
		}

		if jsonOutput {
			if shown == nil {
				shown = []model.LedgerEntry{}
			}
			outputJSON(shown)
			return
		}

		if len(shown) == 0 {
			fmt.Println("No ledger entries yet.")
			return
		}

		for _, entry := range shown {
			decision := entry.Decision
			if decision == "" {
				decision = color.Dim("(no decision)")
			}
			fmt.Printf("%4d  %s  %-12s  %s  %s\n",
				entry.EntryID,
				color.Dim(entry.Timestamp.Format("2006-01-02 15:04")),
				entry.Phase,
				color.Hash(shortHash(entry.ChainHash)),
				decision,
			)
		}
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "limit number of entries (0 = all)")
	historyCmd.Flags().StringVar(&historyPhaseFilter, "phase", "", "filter by phase label")
	rootCmd.AddCommand(historyCmd)
}
