package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/ledger"
	"github.com/sealog-project/sealog/pkg/color"
	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
	"github.com/sealog-project/sealog/pkg/pathutil"
)

var (
	sealPhase    string
	sealDecision string
)

var sealCmd = &cobra.Command{
	Use:   "seal [<path>...]",
	Short: "Seal the document set and append a ledger entry",
	Long: `Seal the document set and append a ledger entry.

Without arguments, the document set comes from the sources list in
.sealog/config.yaml, in configured order. With arguments, each path becomes
a source in argument order (directories are expanded recursively in
lexicographic path order).

The new entry chains off the current ledger head: its chain hash commits to
the sealed content hash and the previous entry's chain hash.

Examples:
  sealog seal                                 # seal configured sources
  sealog seal docs/CONCEPT.md src             # seal explicit sources
  sealog seal --phase review --decision ship  # label the entry`,
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()

		cfg, err := config.Load(w.Root)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		sources, err := resolveSealSources(w.Root, cfg, args)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if len(sources) == 0 {
			fmtErr("no document sources: pass paths or configure sources in .sealog/config.yaml")
			os.Exit(1)
		}

		store, err := ledger.Open(w.Root, cfg.Store)
		if err != nil {
			fmtErr("open ledger store: %v", err)
			os.Exit(1)
		}
		defer store.Close()

		entry, err := ledger.NewAuthor(store).SealAndAppend(sources, sealPhase, sealDecision)
		if err != nil {
			fmtErr("seal: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(entry)
			return
		}

		fmt.Printf("Sealed entry %d (%s)\n", entry.EntryID, entry.Phase)
		fmt.Printf("  Content hash: %s\n", color.Hash(string(entry.ContentHash)))
		fmt.Printf("  Chain hash:   %s\n", color.Hash(string(entry.ChainHash)))
	},
}

// resolveSealSources builds the ordered document set: explicit arguments win
// over configured sources. Argument order is preserved; it is part of the
// seal contract.
func resolveSealSources(root string, cfg *config.Config, args []string) ([]model.DocumentSource, error) {
	if len(args) == 0 {
		sources := cfg.ResolveSources(root)
		for _, src := range sources {
			if err := pathutil.ValidateSourcePath(root, src.Path); err != nil {
				return nil, err
			}
		}
		return sources, nil
	}

	sources := make([]model.DocumentSource, 0, len(args))
	for _, arg := range args {
		if err := pathutil.ValidateSourcePath(root, arg); err != nil {
			return nil, err
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		sources = append(sources, model.DocumentSource{Path: arg, Dir: info.IsDir()})
	}
	return sources, nil
}

func init() {
	sealCmd.Flags().StringVar(&sealPhase, "phase", "session", "phase label for the entry")
	sealCmd.Flags().StringVar(&sealDecision, "decision", "", "decision label for the entry")
	rootCmd.AddCommand(sealCmd)
}
