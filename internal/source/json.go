package source

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ReadJSON reads a JSON object of category name → array of row objects.
// Categories and rows keep their document order.
func ReadJSON(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}
	cats, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Source{Path: path, Categories: cats}, nil
}

// ParseJSON parses raw source bytes. It fails without returning partial
// results if any part of the document has the wrong shape.
func ParseJSON(data []byte) ([]Category, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object of categories", ErrMalformed)
	}

	var (
		cats     []Category
		parseErr error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if !value.IsArray() {
			parseErr = fmt.Errorf("%w: category %q must be an array of rows", ErrMalformed, name)
			return false
		}
		cat := Category{Name: name}
		idx := 0
		value.ForEach(func(_, row gjson.Result) bool {
			if !row.IsObject() {
				parseErr = fmt.Errorf("%w: category %q row %d must be an object", ErrMalformed, name, idx)
				return false
			}
			cat.Rows = append(cat.Rows, rowFromJSON(row))
			idx++
			return true
		})
		if parseErr != nil {
			return false
		}
		cats = append(cats, cat)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return cats, nil
}

func rowFromJSON(obj gjson.Result) RawRow {
	row := make(RawRow)
	obj.ForEach(func(key, value gjson.Result) bool {
		row[key.String()] = scalarString(value)
		return true
	})
	return row
}

// scalarString renders a cell value as text. Spreadsheet exports are mostly
// strings, but numeric and boolean cells show up too.
func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
