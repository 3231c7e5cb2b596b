// Package slugs builds file names for exported checklists.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

const fallback = "unknown"

// Component slugifies a single file name component. Underscores survive, so
// season keys like "christmas_2024" map to themselves.
func Component(s string) string {
	slugged := goslug.Make(strings.TrimSpace(s))
	if slugged == "" {
		return fallback
	}
	return slugged
}

// ExportFileName returns the JSON file name for a checklist. The default
// owner is left out so single-user exports are named after the season alone.
func ExportFileName(season, owner, defaultOwner string) string {
	name := Component(season)
	if owner != "" && owner != defaultOwner {
		name += "-" + Component(owner)
	}
	return name + ".json"
}
