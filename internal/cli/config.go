package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealog-project/sealog/pkg/config"
	"github.com/sealog-project/sealog/pkg/model"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage sealog configuration",
	Long: `Manage sealog configuration stored in .sealog/config.yaml.

Configuration options:
  store           - Ledger storage backend (file, sqlite)
  logging.level   - Log level (debug, info, warn, error)
  logging.format  - Log format (text, json)

The sources list defines the sealed document set; edit it in
.sealog/config.yaml directly, since source order is part of the seal
contract and must be set deliberately.

Available commands:
  show              - Show current configuration
  set <key> <value> - Set a configuration value
  get <key>         - Get a configuration value`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()
		cfg, err := config.Load(w.Root)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		fmt.Println("# sealog configuration")
		fmt.Printf("# Location: %s/.sealog/config.yaml\n\n", w.Root)
		fmt.Printf("store: %s\n", cfg.Store)
		if len(cfg.Sources) > 0 {
			fmt.Println("sources:")
			for _, src := range cfg.Sources {
				kind := "file"
				if src.Dir {
					kind = "dir"
				}
				fmt.Printf("  - %s (%s)\n", src.Path, kind)
			}
		} else {
			fmt.Println("sources: (not set)")
		}
		fmt.Printf("logging.level: %s\n", cfg.Logging.Level)
		fmt.Printf("logging.format: %s\n", cfg.Logging.Format)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()
		cfg, err := config.Load(w.Root)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		switch args[0] {
		case "store":
			fmt.Println(cfg.Store)
		case "logging.level":
			fmt.Println(cfg.Logging.Level)
		case "logging.format":
			fmt.Println(cfg.Logging.Format)
		default:
			fmtErr("unknown config key: %s", args[0])
			os.Exit(1)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		w := requireWorkspace()
		cfg, err := config.Load(w.Root)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		key, value := args[0], args[1]
		switch key {
		case "store":
			switch model.StoreType(value) {
			case model.StoreFile, model.StoreSQLite:
				cfg.Store = model.StoreType(value)
			default:
				fmtErr("invalid store backend: %s (expected file or sqlite)", value)
				os.Exit(1)
			}
		case "logging.level":
			cfg.Logging.Level = value
		case "logging.format":
			cfg.Logging.Format = value
		default:
			fmtErr("unknown config key: %s", key)
			os.Exit(1)
		}

		if err := config.Save(w.Root, cfg); err != nil {
			fmtErr("save config: %v", err)
			os.Exit(1)
		}
		fmt.Printf("%s = %s\n", key, value)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
