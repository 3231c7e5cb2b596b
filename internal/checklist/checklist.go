// Package checklist defines the raid checklist document model shared by the
// transform pipeline, the local seed database, and the document store.
package checklist

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultOwner is the owner used when none is configured.
const DefaultOwner = "default"

// Role is the normalized usage of a checklist entry.
type Role string

const (
	Physical Role = "Physical"
	Special  Role = "Special"
	Support  Role = "Support"
)

// Roles lists every valid role in display order.
var Roles = []Role{Physical, Special, Support}

// ParseRole returns the role named by s. Matching is exact, as stored
// documents use the capitalized form as part of the entry key.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("usage must be Physical, Special, or Support (got %q)", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanonicalTypes is the fixed list of type names recognized in free text.
// Order matters: secondary types are appended in this order.
var CanonicalTypes = []string{
	"Fighting", "Rock", "Ghost", "Bug", "Flying", "Psychic",
	"Steel", "Ground", "Poison", "Water", "Grass", "Electric",
	"Ice", "Dragon", "Dark", "Fairy", "Normal",
}

// Entry is one creature on a checklist. Name and Role together identify an
// entry within a document.
type Entry struct {
	Name      string   `json:"name" bson:"name"`
	Role      Role     `json:"usage" bson:"usage"`
	Types     []string `json:"types" bson:"types"`
	HeldItem  string   `json:"held_item,omitempty" bson:"held_item,omitempty"`
	Ability   string   `json:"ability,omitempty" bson:"ability,omitempty"`
	Moves     string   `json:"moves,omitempty" bson:"moves,omitempty"`
	Notes     string   `json:"notes,omitempty" bson:"notes,omitempty"`
	Completed bool     `json:"completed" bson:"completed"`
}

// Matches reports whether the entry is keyed by name and role.
func (e Entry) Matches(name string, role Role) bool {
	return e.Name == name && e.Role == role
}

// Document is a full checklist for one season and owner.
type Document struct {
	Season    string    `json:"season" bson:"season"`
	Owner     string    `json:"user_id" bson:"user_id"`
	Entries   []Entry   `json:"pokemon" bson:"pokemon"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CompletedCount returns how many entries are marked completed.
func (d *Document) CompletedCount() int {
	n := 0
	for _, e := range d.Entries {
		if e.Completed {
			n++
		}
	}
	return n
}

// Find returns the index of the entry keyed by name and role, or -1.
func (d *Document) Find(name string, role Role) int {
	for i, e := range d.Entries {
		if e.Matches(name, role) {
			return i
		}
	}
	return -1
}

// TypeSettings holds per-season display settings for one type.
type TypeSettings struct {
	Season      string    `json:"season" bson:"season"`
	TypeName    string    `json:"type_name" bson:"type_name"`
	MinRequired int       `json:"min_required" bson:"min_required"`
	IsPinned    bool      `json:"is_pinned" bson:"is_pinned"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

var (
	// ErrEmptyName indicates an entry without a name.
	ErrEmptyName = errors.New("name required")
	// ErrNoTypes indicates an entry without any type tag.
	ErrNoTypes = errors.New("at least one type required")
)

// ValidateEntry checks the invariants every stored entry must satisfy:
// a non-empty name starting with an uppercase letter, exactly one valid
// role, and at least one type tag.
func ValidateEntry(e Entry) error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return ErrEmptyName
	}
	if first, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(first) {
		return fmt.Errorf("name %q must start with an uppercase letter", name)
	}
	if !e.Role.Valid() {
		_, err := ParseRole(string(e.Role))
		return err
	}
	if len(e.Types) == 0 {
		return ErrNoTypes
	}
	return nil
}

// NormalizeTypes trims, uppercases, and de-duplicates type tags, keeping
// first-seen order. Stored documents use uppercase type tags.
func NormalizeTypes(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitTypes parses a comma-separated type list.
func SplitTypes(s string) []string {
	return NormalizeTypes(strings.Split(s, ","))
}
