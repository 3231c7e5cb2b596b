package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/ui"
)

var requirePin bool

var requireCmd = &cobra.Command{
	Use:   "require <type> <min> [season]",
	Short: "Set the minimum number of entries wanted for a type",
	Long: `Stores how many completed entries a type should have for the season.
'raidbook types' flags types below their minimum. --pin keeps the type at the
top of type lists in clients that honor it.

Examples:
  raidbook require fire 3
  raidbook require Ghost 2 christmas_2024 --pin`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRequire,
}

func runRequire(cmd *cobra.Command, args []string) error {
	typeName := strings.ToUpper(strings.TrimSpace(args[0]))
	if typeName == "" {
		return handleError(ErrInvalidInput, fmt.Errorf("type name is required"), "")
	}
	minRequired, err := strconv.Atoi(args[1])
	if err != nil || minRequired < 0 {
		return handleError(ErrInvalidInput, fmt.Errorf("min must be a non-negative integer (got %q)", args[1]), "")
	}
	season := resolveSeason(args, 2)

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		ts := checklist.TypeSettings{
			Season:      season,
			TypeName:    typeName,
			MinRequired: minRequired,
			IsPinned:    requirePin,
		}
		if err := s.SaveTypeSettings(ctx, ts); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		recordChange(audit.Entry{
			Operation: audit.OpRequire,
			Season:    season,
			Name:      typeName,
			Extra:     map[string]interface{}{"min_required": minRequired, "pinned": requirePin},
		})

		if isJSONOutput() {
			outputSuccess(ts, nil)
			return nil
		}
		msg := fmt.Sprintf("%s in %s now requires %d", typeName, season, minRequired)
		if requirePin {
			msg += " (pinned)"
		}
		fmt.Println(ui.Success(msg))
		return nil
	})
}

func init() {
	requireCmd.Flags().BoolVar(&requirePin, "pin", false, "Pin the type")
	rootCmd.AddCommand(requireCmd)
}
