package cli

import (
	"strings"

	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/source"
)

const sourceHint = "Expected a JSON object of category -> rows, or an .xlsx workbook"

// loadFieldMap reads the YAML field map, falling back to the configured path
// and then to the built-in column names.
func loadFieldMap(path string) (source.FieldMap, error) {
	if strings.TrimSpace(path) == "" {
		path = getConfig().Paths.FieldMap
	}
	return source.LoadFieldMap(path)
}

// readSource reads the raw spreadsheet export, falling back to the
// configured source path.
func readSource(path string) (*source.Source, error) {
	if strings.TrimSpace(path) == "" {
		path = getConfig().Paths.Source
	}
	src, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("source loaded",
		zap.String("path", src.Path),
		zap.Int("categories", len(src.Categories)),
		zap.Int("rows", src.RowCount()))
	return src, nil
}
