package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/repo"
	"github.com/sealog-project/sealog/pkg/color"
	"github.com/sealog-project/sealog/pkg/pathutil"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Initialize a new sealog workspace",
	Long: `Initialize a new sealog workspace in a directory named <name>.

This creates:
  - .sealog/ directory with format_version, ledger_id, and config.yaml
  - an empty ledger (created on first seal)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		if err := pathutil.ValidateName(name); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		cwd, _ := os.Getwd()
		root := filepath.Join(cwd, name)

		w, err := repo.Init(root, name)
		if err != nil {
			fmtErr("failed to initialize workspace: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(map[string]any{
				"workspace_root": w.Root,
				"format_version": w.FormatVersion,
				"ledger_id":      w.LedgerID,
			})
		} else {
			fmt.Printf("Initialized sealog workspace in %s\n", color.Success(root))
			fmt.Printf("  Ledger ID: %s\n", w.LedgerID)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
