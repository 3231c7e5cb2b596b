// Package transform turns raw spreadsheet rows into a normalized checklist
// document, recording every skipped row as an issue.
package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/source"
)

// invalidNameMarkers are header and label artifacts that end up in the name
// column of the spreadsheet export.
var invalidNameMarkers = []string{
	"bug/ice", "level 80", "needed", "pick",
	"choices", "special", "phys", "utility",
}

// ValidateName reports whether name looks like a creature name.
func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range invalidNameMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}

// usageRule maps usage text to a role. A rule matches when the text
// contains every marker in allOf and at least one marker in anyOf (an empty
// list always matches). Rules are evaluated in order and the first match
// wins; the conflict rule must stay first.
type usageRule struct {
	allOf     []string
	anyOf     []string
	role      checklist.Role
	ambiguous bool
}

var usageRules = []usageRule{
	{allOf: []string{"PHYS", "SPECIAL"}, ambiguous: true},
	{anyOf: []string{"PHYS"}, role: checklist.Physical},
	{anyOf: []string{"SPECIAL"}, role: checklist.Special},
	{anyOf: []string{"UTILITY", "SUPPORT"}, role: checklist.Support},
}

func (r usageRule) matches(upper string) bool {
	for _, m := range r.allOf {
		if !strings.Contains(upper, m) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return true
	}
	for _, m := range r.anyOf {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

// NormalizeUsage derives a role from free-text usage. When no role can be
// derived, kind says whether the text was ambiguous or simply lacked a
// usage signal.
func NormalizeUsage(usage string) (role checklist.Role, kind checklist.IssueKind, ok bool) {
	upper := strings.ToUpper(strings.TrimSpace(usage))
	for _, rule := range usageRules {
		if !rule.matches(upper) {
			continue
		}
		if rule.ambiguous {
			return "", checklist.AmbiguousUsage, false
		}
		return rule.role, "", true
	}
	return "", checklist.NoUsage, false
}

// Classified is a row that passed name and usage checks.
type Classified struct {
	Name string
	Role checklist.Role
}

// Classify validates the row's name and derives its role. Exactly one of the
// results is non-nil.
func Classify(row source.RawRow, category string, fields source.FieldMap) (*Classified, *checklist.Issue) {
	name := strings.TrimSpace(row.Get(fields.Name))
	if !ValidateName(name) {
		return nil, &checklist.Issue{Kind: checklist.InvalidName, RawName: name, Category: category}
	}

	usage := row.Get(fields.Usage)
	role, kind, ok := NormalizeUsage(usage)
	if !ok {
		return nil, &checklist.Issue{Kind: kind, RawName: name, Category: category, Usage: usage}
	}
	return &Classified{Name: name, Role: role}, nil
}
