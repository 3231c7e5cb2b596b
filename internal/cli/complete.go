package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/ui"
)

var completeUndo bool

var completeCmd = &cobra.Command{
	Use:   "complete <name> <usage> [season]",
	Short: "Mark an entry as completed",
	Long: `Marks the entry keyed by name and usage as completed. The same name can
appear once per usage, so both are required.

Examples:
  raidbook complete Charizard Physical
  raidbook complete Charizard Special christmas_2024
  raidbook complete Gengar Special --undo`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runComplete,
}

var removeCmd = &cobra.Command{
	Use:   "remove <name> <usage> [season]",
	Short: "Remove an entry from a season's checklist",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runRemove,
}

func parseEntryKey(args []string) (string, checklist.Role, error) {
	role, err := checklist.ParseRole(args[1])
	if err != nil {
		return "", "", err
	}
	return args[0], role, nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	name, role, err := parseEntryKey(args)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	season := resolveSeason(args, 2)
	completed := !completeUndo

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		entry, err := s.SetCompleted(ctx, season, owner(), name, role, completed)
		if err != nil {
			return handleError(storeErrorCode(err),
				fmt.Errorf("pokemon '%s' (%s) not found in %s: %w", name, role, season, err),
				"Run 'raidbook pokemon "+season+"' to list entries")
		}
		op := audit.OpComplete
		if !completed {
			op = audit.OpUndo
		}
		recordChange(audit.Entry{Operation: op, Season: season, Name: name, Usage: string(role)})

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"season": season, "entry": entry}, nil)
			return nil
		}
		status := "completed"
		if !entry.Completed {
			status = "not completed"
		}
		fmt.Println(ui.Successf("%s (%s) is now %s", entry.Name, entry.Role, status))
		fmt.Printf("  Types: %s\n", strings.Join(entry.Types, ", "))
		return nil
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	name, role, err := parseEntryKey(args)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	season := resolveSeason(args, 2)

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		if err := s.RemoveEntry(ctx, season, owner(), name, role); err != nil {
			return handleError(storeErrorCode(err),
				fmt.Errorf("pokemon '%s' (%s) not found in %s: %w", name, role, season, err), "")
		}
		recordChange(audit.Entry{Operation: audit.OpRemove, Season: season, Name: name, Usage: string(role)})

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"season": season, "name": name, "usage": role}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed %s (%s) from %s", name, role, season))
		return nil
	})
}

func init() {
	completeCmd.Flags().BoolVar(&completeUndo, "undo", false, "Clear the completed mark instead")
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(removeCmd)
}
