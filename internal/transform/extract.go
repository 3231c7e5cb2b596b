package transform

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/source"
)

// excludedChoices are placeholder values of the choices column.
var excludedChoices = map[string]bool{
	"":       true,
	"NEEDED": true,
	"PICK 5": true,
}

// PrimaryType returns the type tag implied by a category name. The
// "Utility" category is stored as "Support".
func PrimaryType(category string) string {
	t := cases.Title(language.Und).String(category)
	if t == "Utility" {
		return string(checklist.Support)
	}
	return t
}

// SecondaryTypes appends every canonical type named in text to types,
// skipping tags already present. Tags are appended in canonical order,
// not in the order they appear in text.
func SecondaryTypes(types []string, text string) []string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return types
	}
	for _, t := range checklist.CanonicalTypes {
		if strings.Contains(lower, strings.ToLower(t)) && !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types
}

// namesType reports whether text mentions any canonical type.
func namesType(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range checklist.CanonicalTypes {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// CollectMoves joins the non-empty move columns with ", ".
func CollectMoves(row source.RawRow, fields source.FieldMap) string {
	var moves []string
	for i, key := range fields.Moves {
		if i == source.MaxMoveFields {
			break
		}
		if m := strings.TrimSpace(row.Get(key)); m != "" {
			moves = append(moves, m)
		}
	}
	return strings.Join(moves, ", ")
}

// CollectNotes builds the note text. Secondary usage becomes a note only
// when it names no type; choices are appended unless they are a
// placeholder.
func CollectNotes(secondaryUsage, choices string) string {
	notes := ""
	secondaryUsage = strings.TrimSpace(secondaryUsage)
	if secondaryUsage != "" && !namesType(secondaryUsage) {
		notes = secondaryUsage
	}
	choices = strings.TrimSpace(choices)
	if !excludedChoices[strings.ToUpper(choices)] {
		notes = strings.TrimSpace(notes + " " + choices)
	}
	return notes
}

// Extract builds the normalized entry for a classified row.
func Extract(row source.RawRow, category string, c Classified, fields source.FieldMap) checklist.Entry {
	secondary := row.Get(fields.SecondaryUsage)
	return checklist.Entry{
		Name:     c.Name,
		Role:     c.Role,
		Types:    SecondaryTypes([]string{PrimaryType(category)}, secondary),
		HeldItem: strings.TrimSpace(row.Get(fields.HeldItem)),
		Ability:  strings.TrimSpace(row.Get(fields.Ability)),
		Moves:    CollectMoves(row, fields),
		Notes:    CollectNotes(secondary, row.Get(fields.Choices)),
	}
}
