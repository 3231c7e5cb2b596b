package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/atomicfile"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/transform"
)

var (
	transformOut     string
	transformMapping string
)

var transformCmd = &cobra.Command{
	Use:   "transform [source]",
	Short: "Convert the raw spreadsheet export into a checklist document",
	Long: `Reads the raw spreadsheet export (JSON object of category -> rows, or an
.xlsx workbook with one sheet per category) and writes a normalized checklist
document ready for import.

Rows that cannot be converted are skipped and listed in the report:
  - invalid names (blank, header text, or not starting with an uppercase letter)
  - missing usage (no Physical/Special/Support keyword)
  - ambiguous usage (both physical and special)

The season and owner come from --season/--owner or the config defaults.

Examples:
  raidbook transform raw_data.json --season christmas_2024
  raidbook transform sheets/raids.xlsx --out data/checklist.json
  raidbook transform --mapping fields.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

type transformOutput struct {
	Output string            `json:"output"`
	Season string            `json:"season"`
	Owner  string            `json:"user_id"`
	Stats  transform.Stats   `json:"stats"`
	Issues []checklist.Issue `json:"issues"`
}

func runTransform(cmd *cobra.Command, args []string) error {
	var sourcePath string
	if len(args) > 0 {
		sourcePath = args[0]
	}
	out := transformOut
	if strings.TrimSpace(out) == "" {
		out = getConfig().Paths.Output
	}

	fields, err := loadFieldMap(transformMapping)
	if err != nil {
		return handleError(ErrFieldMapInvalid, err, "Check the YAML field map")
	}
	src, err := readSource(sourcePath)
	if err != nil {
		return handleError(ErrSourceInvalid, err, sourceHint)
	}

	res, err := transform.Run(src.Categories, transform.Options{
		Season: resolveSeason(nil, 0),
		Owner:  owner(),
		Fields: fields,
	})
	if err != nil {
		return handleError(ErrInvalidInput, err, "Pass --season or set default_season in config.toml")
	}

	if err := atomicfile.WriteJSON(out, res.Document); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	logger.Debug("transform complete",
		zap.String("output", out),
		zap.Int("converted", res.Stats.Converted),
		zap.Int("skipped", res.Stats.Skipped()))

	if isJSONOutput() {
		var warnings []Warning
		if n := res.Stats.Skipped(); n > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnRowsSkipped,
				Message: fmt.Sprintf("%d row(s) skipped; see issues", n),
			})
		}
		outputSuccessWithWarnings(transformOutput{
			Output: out,
			Season: res.Document.Season,
			Owner:  res.Document.Owner,
			Stats:  res.Stats,
			Issues: res.Issues,
		}, warnings, &Meta{Count: res.Stats.Converted})
		return nil
	}

	return transform.WriteReport(os.Stdout, res, out)
}

func init() {
	transformCmd.Flags().StringVarP(&transformOut, "out", "o", "", "Output file (default: paths.output from config)")
	transformCmd.Flags().StringVar(&transformMapping, "mapping", "", "YAML field map overriding column names")
	rootCmd.AddCommand(transformCmd)
}
