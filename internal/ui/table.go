package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Table renders rows as space-aligned columns without borders. Widths are
// measured in terminal cells, ignoring ANSI styling, so styled cells and
// names with wide runes still line up.
type Table struct {
	rows       [][]string
	colWidths  []int
	maxWidths  []int
	colPadding int
}

// NewTable creates a new table with the specified number of columns
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		maxWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// SetMaxWidth caps a column; longer cells are truncated with an ellipsis.
// Zero means no limit.
func (t *Table) SetMaxWidth(col, width int) {
	if col >= 0 && col < len(t.maxWidths) {
		t.maxWidths[col] = width
	}
}

// AddRow adds a row to the table. Missing cells render empty and extra
// cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table as a string
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(row))
		for i, cell := range row {
			if m := t.maxWidths[i]; m > 0 {
				cell = Truncate(cell, m)
			}
			rows[r][i] = cell
			if w := cellWidth(cell); w > t.colWidths[i] {
				t.colWidths[i] = w
			}
		}
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			sb.WriteString(cell)
			// No trailing padding on the last column.
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-cellWidth(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Truncate shortens s to at most width terminal cells, ending with "…" when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}
