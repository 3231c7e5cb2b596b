package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List every stored checklist",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var pokemonCmd = &cobra.Command{
	Use:   "pokemon [season]",
	Short: "List the entries of a season's checklist",
	Long: `Lists every entry of the checklist with its completion mark, usage,
types and held item. The season defaults to --season or default_season.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPokemon,
}

var typesCmd = &cobra.Command{
	Use:   "types [season]",
	Short: "Summarize completion per type",
	Long: `Counts completed and total entries for every type tag in the checklist,
sorted by type name. Minimum-required counts and pins set with 'raidbook
require' are shown alongside.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTypes,
}

type checklistSummary struct {
	Season    string    `json:"season"`
	Owner     string    `json:"user_id"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		docs, err := s.List(ctx)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		summaries := make([]checklistSummary, 0, len(docs))
		for i := range docs {
			summaries = append(summaries, checklistSummary{
				Season:    docs[i].Season,
				Owner:     docs[i].Owner,
				Total:     len(docs[i].Entries),
				Completed: docs[i].CompletedCount(),
				UpdatedAt: docs[i].UpdatedAt,
			})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"checklists": summaries}, &Meta{Count: len(summaries)})
			return nil
		}

		if len(summaries) == 0 {
			fmt.Println(ui.Hint("No checklists stored. Run 'raidbook import <file>' to add one."))
			return nil
		}
		fmt.Println(ui.Header("Checklists") + " " + ui.Hint(ui.Count(len(summaries), "checklist", "checklists")))
		fmt.Println()
		for _, sum := range summaries {
			fmt.Printf("Season:    %s\n", ui.AccentBold.Render(sum.Season))
			fmt.Printf("User:      %s\n", sum.Owner)
			fmt.Printf("Pokemon:   %d\n", sum.Total)
			fmt.Printf("Completed: %d/%d\n", sum.Completed, sum.Total)
			fmt.Printf("Updated:   %s\n", formatUpdated(sum.UpdatedAt))
			fmt.Println(ui.Divider(40))
		}
		return nil
	})
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(time.RFC3339)
}

func checklistLookupError(season string, err error) error {
	return handleError(storeErrorCode(err), fmt.Errorf("season '%s': %w", season, err), "Run 'raidbook show' to list stored checklists")
}

func runPokemon(cmd *cobra.Command, args []string) error {
	season := resolveSeason(args, 0)
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		doc, err := s.Get(ctx, season, owner())
		if err != nil {
			return checklistLookupError(season, err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"season":    doc.Season,
				"user_id":   doc.Owner,
				"pokemon":   doc.Entries,
				"completed": doc.CompletedCount(),
			}, &Meta{Count: len(doc.Entries)})
			return nil
		}

		display := ui.NewDisplayContext()
		fmt.Printf("%s %s\n", ui.Header("Pokemon in "+season), ui.Hint(ui.Count(len(doc.Entries), "entry", "entries")))
		fmt.Println(ui.Divider(display.TermWidth))

		// Mark, usage and the held item get fixed widths; name and types share the rest.
		flex := display.ColumnBudget(2+10+20+8, 2, 16)
		tbl := ui.NewTable(5)
		tbl.SetMaxWidth(1, flex)
		tbl.SetMaxWidth(3, flex)
		tbl.SetMaxWidth(4, 20)
		for _, e := range doc.Entries {
			tbl.AddRow(ui.Checkbox(e.Completed), e.Name, "("+string(e.Role)+")", strings.Join(e.Types, ", "), e.HeldItem)
		}
		fmt.Print(tbl.String())
		return nil
	})
}

// typeCount is the per-type completion tally of one checklist.
type typeCount struct {
	Type        string `json:"type"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	MinRequired int    `json:"min_required,omitempty"`
	Pinned      bool   `json:"pinned,omitempty"`
}

// countTypes tallies entries per type tag, sorted by type name. Settings
// for types that have no entries are still listed.
func countTypes(doc *checklist.Document, settings []checklist.TypeSettings) []typeCount {
	byType := make(map[string]*typeCount)
	get := func(name string) *typeCount {
		tc, ok := byType[name]
		if !ok {
			tc = &typeCount{Type: name}
			byType[name] = tc
		}
		return tc
	}

	for _, e := range doc.Entries {
		for _, t := range e.Types {
			tc := get(t)
			tc.Total++
			if e.Completed {
				tc.Completed++
			}
		}
	}
	for _, ts := range settings {
		tc := get(ts.TypeName)
		tc.MinRequired = ts.MinRequired
		tc.Pinned = ts.IsPinned
	}

	out := make([]typeCount, 0, len(byType))
	for _, tc := range byType {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

func runTypes(cmd *cobra.Command, args []string) error {
	season := resolveSeason(args, 0)
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		doc, err := s.Get(ctx, season, owner())
		if err != nil {
			return checklistLookupError(season, err)
		}
		settings, err := s.TypeSettings(ctx, season)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		counts := countTypes(doc, settings)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"season": season, "types": counts}, &Meta{Count: len(counts)})
			return nil
		}

		fmt.Println(ui.Header("Types in " + season))
		fmt.Println(ui.Divider(40))
		tbl := ui.NewTable(3)
		for _, tc := range counts {
			var notes []string
			if tc.MinRequired > 0 {
				mark := fmt.Sprintf("min %d", tc.MinRequired)
				if tc.Completed < tc.MinRequired {
					mark = ui.Warning(mark)
				}
				notes = append(notes, mark)
			}
			if tc.Pinned {
				notes = append(notes, "pinned")
			}
			tbl.AddRow("  "+tc.Type, ui.Ratio(tc.Completed, tc.Total), ui.Hint(strings.Join(notes, ", ")))
		}
		fmt.Print(tbl.String())
		return nil
	})
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pokemonCmd)
	rootCmd.AddCommand(typesCmd)
}
