package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/atomicfile"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/slugs"
	"github.com/raidbook/raidbook/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <season> [output]",
	Short: "Export one season's checklist to JSON",
	Long: `Writes the season's checklist to a JSON file that 'raidbook import' can
read back. The output defaults to <season>_export.json.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

var exportAllCmd = &cobra.Command{
	Use:   "export-all [base_dir]",
	Short: "Export every checklist to <base_dir>/checklists/",
	Long: `Writes every stored checklist to <base_dir>/checklists/<season>.json.
Checklists of owners other than "default" get the owner appended to the
file name. base_dir defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExportAll,
}

type exportedFile struct {
	Season string `json:"season"`
	Owner  string `json:"user_id"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

func runExport(cmd *cobra.Command, args []string) error {
	season := args[0]
	out := season + "_export.json"
	if len(args) > 1 {
		out = args[1]
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		doc, err := s.Get(ctx, season, owner())
		if err != nil {
			return checklistLookupError(season, err)
		}
		if err := atomicfile.WriteJSON(out, doc); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(exportedFile{Season: doc.Season, Owner: doc.Owner, Path: out, Count: len(doc.Entries)}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Exported %s to %s", season, ui.FilePath(out)))
		return nil
	})
}

func runExportAll(cmd *cobra.Command, args []string) error {
	base := "."
	if len(args) > 0 {
		base = args[0]
	}
	dir := filepath.Join(base, "checklists")

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return withStore(ctx, func(s checklistStore) error {
		docs, err := s.List(ctx)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if len(docs) == 0 {
			return handleError(ErrChecklistNotFound, errors.New("no checklists found in database"), "Run 'raidbook import <file>' first")
		}

		files := make([]exportedFile, 0, len(docs))
		for i := range docs {
			doc := docs[i]
			path := filepath.Join(dir, slugs.ExportFileName(doc.Season, doc.Owner, checklist.DefaultOwner))
			if err := atomicfile.WriteJSON(path, doc); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			files = append(files, exportedFile{Season: doc.Season, Owner: doc.Owner, Path: path, Count: len(doc.Entries)})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"directory": dir, "files": files}, &Meta{Count: len(files)})
			return nil
		}
		fmt.Println(ui.Successf("Exporting %d checklist(s) to %s/", len(files), ui.FilePath(dir)))
		for _, f := range files {
			fmt.Printf("  - %s: %d Pokemon\n", filepath.Base(f.Path), f.Count)
		}
		return nil
	})
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(exportAllCmd)
}
