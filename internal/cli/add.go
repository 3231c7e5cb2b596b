package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/ui"
)

var (
	addName     string
	addRole     checklist.Role
	addTypes    string
	addHeldItem string
	addAbility  string
	addMoves    string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add [season]",
	Short: "Add an entry to a season's checklist",
	Long: `Adds one entry to the checklist, creating the checklist if it does not
exist yet. Without --name the fields are asked for interactively.

Types are comma separated and stored uppercase.

Examples:
  raidbook add christmas_2024 --name Snorlax --usage Physical --types normal
  raidbook add --name Blissey --usage Support --types Normal --held-item Leftovers
  raidbook add summer_2025`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func entryFromFlags() checklist.Entry {
	return checklist.Entry{
		Name:     strings.TrimSpace(addName),
		Role:     addRole,
		Types:    checklist.SplitTypes(addTypes),
		HeldItem: strings.TrimSpace(addHeldItem),
		Ability:  strings.TrimSpace(addAbility),
		Moves:    strings.TrimSpace(addMoves),
		Notes:    strings.TrimSpace(addNotes),
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	season := resolveSeason(args, 0)

	var entry checklist.Entry
	if strings.TrimSpace(addName) != "" {
		entry = entryFromFlags()
	} else {
		if isJSONOutput() {
			return handleError(ErrMissingArgument, errors.New("--name is required with --json"), "Pass --name, --usage and --types")
		}
		var err error
		entry, err = prompt.EntryFields(season)
		if err != nil {
			return handleError(ErrEntryInvalid, err, "")
		}
	}
	entry.Completed = false

	if err := checklist.ValidateEntry(entry); err != nil {
		return handleError(ErrEntryInvalid, err, "Usage must be Physical, Special, or Support and at least one type is required")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		created, err := s.AddEntry(ctx, season, owner(), entry)
		if err != nil {
			return handleError(storeErrorCode(err), err, "")
		}
		recordChange(audit.Entry{Operation: audit.OpAdd, Season: season, Name: entry.Name, Usage: string(entry.Role)})

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"season":  season,
				"user_id": owner(),
				"entry":   entry,
				"created": created,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added %s (%s) to %s", entry.Name, entry.Role, season))
		if created {
			fmt.Println(ui.Hint("  New checklist created"))
		}
		return nil
	})
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Pokemon name (prompts for every field when omitted)")
	addCmd.Flags().Var(newRoleValue(&addRole), "usage", "Usage: Physical, Special, or Support")
	addCmd.Flags().StringVar(&addTypes, "types", "", "Comma-separated types, e.g. Fire,Flying")
	addCmd.Flags().StringVar(&addHeldItem, "held-item", "", "Held item")
	addCmd.Flags().StringVar(&addAbility, "ability", "", "Ability")
	addCmd.Flags().StringVar(&addMoves, "moves", "", "Moves, comma separated")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	rootCmd.AddCommand(addCmd)
}
