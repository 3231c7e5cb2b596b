// Package source reads the raw, spreadsheet-shaped checklist data.
//
// The data is grouped by category (the sheet or top-level JSON key the rows
// appear under). Rows keep whatever column names the spreadsheet export
// produced; FieldMap says which of those columns carry which attribute.
package source

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrMalformed indicates that the input could be read but does not have the
// expected category → rows shape.
var ErrMalformed = errors.New("malformed source")

// RawRow is one spreadsheet row keyed by column name.
type RawRow map[string]string

// Get returns the value for key, or "" when the column is absent.
func (r RawRow) Get(key string) string {
	if key == "" {
		return ""
	}
	return r[key]
}

// Category is a group of rows in the order they appear in the source.
type Category struct {
	Name string
	Rows []RawRow
}

// Source is the full content of one input file.
type Source struct {
	Path       string
	Categories []Category
}

// RowCount returns the total number of rows across all categories.
func (s *Source) RowCount() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Rows)
	}
	return n
}

// ReadFile loads a source file, choosing the reader by extension:
// .xlsx workbooks are read sheet by sheet, anything else is parsed as JSON.
func ReadFile(path string) (*Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	default:
		return ReadJSON(path)
	}
}
