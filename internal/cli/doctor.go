package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/internal/doctor"
	"github.com/sealog-project/sealog/pkg/color"
)

var doctorStrict bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check workspace health",
	Long: `Check workspace health.

Checks format version, configuration, document sources, and the ledger
store. With --strict, the full hash chain is verified as well.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()

		result, err := doctor.NewDoctor(w.Root).Check(doctorStrict)
		if err != nil {
			fmtErr("doctor: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(result)
			if !result.Healthy {
				os.Exit(1)
			}
			return
		}

		if len(result.Findings) == 0 {
			fmt.Println(color.Success("Workspace healthy, no findings."))
			return
		}

		for _, f := range result.Findings {
			severity := f.Severity
			switch severity {
			case "critical", "error":
				severity = color.Error(severity)
			case "warning":
				severity = color.Warning(severity)
			}
			line := fmt.Sprintf("[%s] %s: %s", severity, f.Category, f.Description)
			if f.Path != "" {
				line += " (" + f.Path + ")"
			}
			fmt.Println(line)
		}

		if !result.Healthy {
			os.Exit(1)
		}
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "verify the full hash chain")
	rootCmd.AddCommand(doctorCmd)
}
