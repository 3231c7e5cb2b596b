package checklist

import "fmt"

// IssueKind classifies why a source row was skipped.
type IssueKind string

const (
	InvalidName    IssueKind = "invalid_name"
	NoUsage        IssueKind = "no_usage"
	AmbiguousUsage IssueKind = "ambiguous_usage"
)

// Issue records one skipped source row for manual review.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	RawName  string    `json:"raw_name"`
	Category string    `json:"category"`
	Usage    string    `json:"usage,omitempty"`
}

// String renders the issue as a single report line.
func (i Issue) String() string {
	switch i.Kind {
	case InvalidName:
		return fmt.Sprintf("SKIPPED (invalid name): %s in %s", i.RawName, i.Category)
	case AmbiguousUsage:
		return fmt.Sprintf("AMBIGUOUS USAGE (%s): %s - needs manual classification", i.Usage, i.RawName)
	case NoUsage:
		return fmt.Sprintf("NO USAGE: %s in %s (field: '%s')", i.RawName, i.Category, i.Usage)
	default:
		return fmt.Sprintf("%s: %s in %s", i.Kind, i.RawName, i.Category)
	}
}
