// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/config"
	"github.com/raidbook/raidbook/internal/logging"
	"github.com/raidbook/raidbook/internal/ui"
)

// storeTimeout bounds every command's round trips to the checklist store.
const storeTimeout = 10 * time.Second

var (
	// Global flags
	configPath string
	seasonFlag string
	ownerFlag  string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "raidbook",
	Short: "Raid checklist tooling",
	Long: `raidbook turns the raid spreadsheet export into checklist documents and
manages those checklists in MongoDB.

  transform   raw spreadsheet JSON/XLSX -> checklist JSON, with a review report
  initdb      raw spreadsheet JSON/XLSX -> local SQLite checklist database
  import      checklist JSON -> MongoDB
  show, pokemon, types, complete, add, remove, require, export, export-all
              inspect and edit stored checklists
  history     changes recorded in the audit log`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		// config init must work while the existing file is broken.
		if cmd == configInitCmd {
			return nil
		}

		loaded, err := loadGlobalConfig()
		if err != nil {
			err = fmt.Errorf("failed to load config: %w", err)
			if isJSONOutput() {
				outputError(ErrConfigInvalid, err.Error(), nil, "Fix the file or run 'raidbook config init --config <path>'")
			}
			return err
		}
		cfg = loaded
		if ownerFlag != "" {
			cfg.Owner = ownerFlag
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		logger = logging.New(verbose)
		logger.Debug("config loaded",
			zap.String("database", cfg.Database),
			zap.String("season", cfg.DefaultSeason),
			zap.String("owner", cfg.Owner))
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	defer func() { _ = logger.Sync() }()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&seasonFlag, "season", "", "Season key (overrides default_season)")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "Checklist owner (user_id)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log diagnostics to stderr")
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// getConfig returns the loaded config, or the defaults if the root hook has
// not run.
func getConfig() *config.Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// resolveSeason picks the season from a positional argument, then --season,
// then the configured default.
func resolveSeason(args []string, idx int) string {
	if idx < len(args) && strings.TrimSpace(args[idx]) != "" {
		return strings.TrimSpace(args[idx])
	}
	return getConfig().Season(seasonFlag)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := context.Background()
	if cmd != nil && cmd.Context() != nil {
		parent = cmd.Context()
	}
	return context.WithTimeout(parent, storeTimeout)
}
