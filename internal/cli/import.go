package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/store"
	"github.com/raidbook/raidbook/internal/ui"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import <json_file>",
	Short: "Import a checklist document into MongoDB",
	Long: `Imports a checklist document (as written by 'raidbook transform' or
'raidbook export') into the store. The file must name its season; user_id
defaults to "default". Type tags are stored uppercase.

If a checklist for the same season and user already exists you are asked
before it is replaced. --yes replaces without asking.

Examples:
  raidbook import checklist.json
  raidbook import data/checklist_christmas_2024.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

type invalidEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// readChecklistFile decodes a checklist document and normalizes it for
// storage: owner defaulted, type tags uppercased.
func readChecklistFile(path string) (checklist.Document, error) {
	var doc checklist.Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Season == "" {
		return doc, fmt.Errorf("%s must contain a 'season' field", path)
	}
	if doc.Owner == "" {
		doc.Owner = checklist.DefaultOwner
	}
	if doc.Entries == nil {
		doc.Entries = []checklist.Entry{}
	}
	for i := range doc.Entries {
		doc.Entries[i].Types = checklist.NormalizeTypes(doc.Entries[i].Types)
	}
	return doc, nil
}

func validateEntries(entries []checklist.Entry) []invalidEntry {
	var bad []invalidEntry
	for i, e := range entries {
		if err := checklist.ValidateEntry(e); err != nil {
			bad = append(bad, invalidEntry{Index: i, Name: e.Name, Error: err.Error()})
		}
	}
	return bad
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := readChecklistFile(path)
	if err != nil {
		return handleError(ErrFileReadError, err, "Expected a checklist document with season, user_id and pokemon")
	}
	if bad := validateEntries(doc.Entries); len(bad) > 0 {
		return handleErrorWithDetails(ErrEntryInvalid,
			fmt.Errorf("%d invalid entr(ies) in %s; first: %s (%s)", len(bad), path, bad[0].Name, bad[0].Error),
			"Fix the listed entries and import again", bad)
	}
	doc.UpdatedAt = time.Now().UTC()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		action := "imported"
		_, err := s.Get(ctx, doc.Season, doc.Owner)
		switch {
		case err == nil:
			if !importYes && !prompt.Confirm(ui.Warningf("Checklist for %s already exists. Overwrite?", doc.Season)) {
				if isJSONOutput() {
					return handleError(ErrConfirmationRequired,
						fmt.Errorf("checklist for %s already exists", doc.Season), "Pass --yes to replace it")
				}
				fmt.Println("Import cancelled")
				return nil
			}
			if err := s.Replace(ctx, doc); err != nil {
				return handleError(storeErrorCode(err), err, "")
			}
			action = "updated"
		case errors.Is(err, store.ErrNotFound):
			if err := s.Insert(ctx, doc); err != nil {
				return handleError(storeErrorCode(err), err, "Run the import again to replace it")
			}
		default:
			return handleError(ErrDatabaseError, err, "")
		}
		op := audit.OpImport
		if action == "updated" {
			op = audit.OpReplace
		}
		recordChange(audit.Entry{
			Operation: op,
			Season:    doc.Season,
			Owner:     doc.Owner,
			Extra:     map[string]interface{}{"count": len(doc.Entries), "source": path},
		})
		logger.Debug("checklist stored", zap.String("action", action), zap.String("season", doc.Season), zap.String("user_id", doc.Owner))

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"action":  action,
				"season":  doc.Season,
				"user_id": doc.Owner,
			}, &Meta{Count: len(doc.Entries)})
			return nil
		}
		if action == "updated" {
			fmt.Println(ui.Successf("Updated checklist for %s", doc.Season))
		} else {
			fmt.Println(ui.Successf("Imported checklist for %s", doc.Season))
		}
		fmt.Printf("  Pokemon count: %d\n", len(doc.Entries))
		return nil
	})
}

func init() {
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Replace an existing checklist without asking")
	rootCmd.AddCommand(importCmd)
}
