package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/ui"
)

var historyAll bool

var historyCmd = &cobra.Command{
	Use:   "history [season]",
	Short: "Show recorded checklist changes",
	Long: `Lists the changes recorded in the audit log (paths.audit_log in
config.toml), oldest first. Without --all only the season's changes are
shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := changeLog()
	if !log.Enabled() {
		return handleError(ErrConfigInvalid, errors.New("audit log is disabled"), "Set paths.audit_log in config.toml")
	}
	season := resolveSeason(args, 0)
	if historyAll {
		season = ""
	}

	entries, err := log.Read(season)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"season": season, "changes": entries}, &Meta{Count: len(entries)})
		return nil
	}
	if len(entries) == 0 {
		fmt.Println(ui.Hint("No changes recorded."))
		return nil
	}

	tbl := ui.NewTable(4)
	for _, e := range entries {
		target := e.Name
		if e.Usage != "" {
			target += " (" + e.Usage + ")"
		}
		tbl.AddRow(ui.Hint(e.Timestamp.Local().Format(time.DateTime)), e.Operation, e.Season, target)
	}
	fmt.Print(tbl.String())
	return nil
}

func init() {
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "Show changes for every season")
	rootCmd.AddCommand(historyCmd)
}
