package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/seeddb"
	"github.com/raidbook/raidbook/internal/ui"
)

var (
	initdbPath    string
	initdbMapping string
)

var initdbCmd = &cobra.Command{
	Use:   "initdb [source]",
	Short: "Build the local SQLite checklist database",
	Long: `Drops and recreates the local SQLite checklist database from the raw
spreadsheet export. Each category becomes a type; each named row becomes a
checklist row with its spreadsheet values copied as-is.

Examples:
  raidbook initdb
  raidbook initdb raw_data.json --db data/checklist.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitDB,
}

type initdbOutput struct {
	Database string               `json:"database"`
	Stats    seeddb.LoadStats     `json:"stats"`
	Types    []seeddb.TypeSummary `json:"types"`
}

func runInitDB(cmd *cobra.Command, args []string) error {
	var sourcePath string
	if len(args) > 0 {
		sourcePath = args[0]
	}
	dbPath := initdbPath
	if strings.TrimSpace(dbPath) == "" {
		dbPath = getConfig().Paths.SQLite
	}

	fields, err := loadFieldMap(initdbMapping)
	if err != nil {
		return handleError(ErrFieldMapInvalid, err, "Check the YAML field map")
	}
	src, err := readSource(sourcePath)
	if err != nil {
		return handleError(ErrSourceInvalid, err, sourceHint)
	}

	stats, err := seeddb.Init(dbPath, src, fields, logger)
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}

	db, err := seeddb.Open(dbPath)
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}
	defer db.Close()
	summaries, err := db.Summaries()
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(initdbOutput{Database: dbPath, Stats: stats, Types: summaries}, &Meta{Count: stats.Entries})
		return nil
	}

	fmt.Println(ui.Successf("Database initialized: %s", ui.FilePath(dbPath)))
	fmt.Printf("  Types: %d\n", stats.Types)
	fmt.Printf("  Pokemon: %d\n", stats.Entries)
	if stats.Skipped > 0 {
		fmt.Println(ui.Hint(fmt.Sprintf("  Skipped rows without a name: %d", stats.Skipped)))
	}
	fmt.Println()

	tbl := ui.NewTable(2)
	for _, s := range summaries {
		tbl.AddRow(s.TypeName, fmt.Sprintf("%d", s.Total))
	}
	fmt.Print(tbl.String())
	return nil
}

func init() {
	initdbCmd.Flags().StringVar(&initdbPath, "db", "", "SQLite database path (default: paths.sqlite from config)")
	initdbCmd.Flags().StringVar(&initdbMapping, "mapping", "", "YAML field map overriding column names")
	rootCmd.AddCommand(initdbCmd)
}
