package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/pkg/color"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show workspace information",
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

		head := model.Genesis
		if len(entries) > 0 {
			head = entries[len(entries)-1].ChainHash
		}

		storeType := cfg.Store
		if storeType == "" {
			storeType = model.StoreFile
		}

		info := map[string]any{
			"workspace_root": w.Root,
			"ledger_id":      w.LedgerID,
			"format_version": w.FormatVersion,
			"store":          storeType,
			"entry_count":    len(entries),
			"chain_head":     head,
		}

		if jsonOutput {
			outputJSON(info)
			return
		}

		fmt.Printf("Workspace: %s\n", w.Root)
		fmt.Printf("  Ledger ID: %s\n", w.LedgerID)
		fmt.Printf("  Format version: %d\n", w.FormatVersion)
		fmt.Printf("  Store: %s\n", storeType)
		fmt.Printf("  Entries: %d\n", len(entries))
		fmt.Printf("  Chain head: %s\n", color.Hash(string(head)))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
