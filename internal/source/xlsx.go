package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a workbook where every sheet is a category and the first
// row of each sheet holds the column names.
func ReadXLSX(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	src := &Source{Path: path}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read sheet %q: %w", path, sheet, err)
		}
		src.Categories = append(src.Categories, categoryFromRows(sheet, rows))
	}
	if len(src.Categories) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrMalformed, path)
	}
	return src, nil
}

func categoryFromRows(name string, rows [][]string) Category {
	cat := Category{Name: name}
	if len(rows) == 0 {
		return cat
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	keys := headerKeys(rows[0], width)

	for _, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}
		row := make(RawRow, len(keys))
		for i, key := range keys {
			if i < len(cells) {
				row[key] = cells[i]
			} else {
				row[key] = ""
			}
		}
		cat.Rows = append(cat.Rows, row)
	}
	return cat
}

// headerKeys names every column. Blank headers take the "__N" names the JSON
// exporter uses, counting from the last named column: a "Moves" header
// followed by three blank ones yields Moves, __2, __3, __4.
func headerKeys(header []string, width int) []string {
	keys := make([]string, width)
	seen := make(map[string]bool, width)
	run := 0
	for i := 0; i < width; i++ {
		h := ""
		if i < len(header) {
			h = strings.TrimSpace(header[i])
		}
		if h == "" {
			run++
			h = "__" + strconv.Itoa(run)
		} else {
			run = 1
		}
		for base, n := h, 2; seen[h]; n++ {
			h = base + "_" + strconv.Itoa(n)
		}
		seen[h] = true
		keys[i] = h
	}
	return keys
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
