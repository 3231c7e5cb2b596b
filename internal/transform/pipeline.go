package transform

import (
	"errors"
	"time"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/source"
)

// Options identify the document being built and how rows are read.
type Options struct {
	Season string
	Owner  string
	Fields source.FieldMap
	// Now stamps updated_at. Defaults to time.Now.
	Now func() time.Time
}

// Stats counts rows by outcome. Total always equals Converted plus the
// three skip counters.
type Stats struct {
	Total          int `json:"total_entries"`
	Converted      int `json:"converted"`
	InvalidName    int `json:"skipped_invalid_name"`
	NoUsage        int `json:"skipped_no_usage"`
	AmbiguousUsage int `json:"skipped_ambiguous_usage"`
}

// Skipped returns the number of rows that produced an issue.
func (s Stats) Skipped() int {
	return s.InvalidName + s.NoUsage + s.AmbiguousUsage
}

func (s *Stats) skip(kind checklist.IssueKind) {
	switch kind {
	case checklist.InvalidName:
		s.InvalidName++
	case checklist.NoUsage:
		s.NoUsage++
	case checklist.AmbiguousUsage:
		s.AmbiguousUsage++
	}
}

// Result is the outcome of one transform run.
type Result struct {
	Document checklist.Document `json:"document"`
	Issues   []checklist.Issue  `json:"issues"`
	Stats    Stats              `json:"stats"`
}

var (
	// ErrNoSeason indicates Options without a season identifier.
	ErrNoSeason = errors.New("season is required")
	// ErrNoOwner indicates Options without an owner identifier.
	ErrNoOwner = errors.New("owner is required")
)

// Run transforms every row of every category, in order. Rows either become
// entries or issues; nothing a single row contains can fail the run.
func Run(categories []source.Category, opts Options) (*Result, error) {
	b, err := NewBuilder(opts.Season, opts.Owner)
	if err != nil {
		return nil, err
	}
	if err := opts.Fields.Validate(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	res := &Result{Issues: []checklist.Issue{}}
	for _, cat := range categories {
		for _, row := range cat.Rows {
			res.Stats.Total++

			c, issue := Classify(row, cat.Name, opts.Fields)
			if issue != nil {
				res.Stats.skip(issue.Kind)
				res.Issues = append(res.Issues, *issue)
				continue
			}

			b.append(Extract(row, cat.Name, *c, opts.Fields))
			res.Stats.Converted++
		}
	}

	res.Document = b.Document(now())
	return res, nil
}

// Builder accumulates entries for one season and owner.
type Builder struct {
	season  string
	owner   string
	entries []checklist.Entry
}

// NewBuilder returns a builder for the given document key.
func NewBuilder(season, owner string) (*Builder, error) {
	if season == "" {
		return nil, ErrNoSeason
	}
	if owner == "" {
		return nil, ErrNoOwner
	}
	return &Builder{season: season, owner: owner, entries: []checklist.Entry{}}, nil
}

// Add appends an entry that did not come from the spreadsheet, such as one
// entered by hand. The entry is checked against the document invariants but
// not re-classified.
func (b *Builder) Add(e checklist.Entry) error {
	if err := checklist.ValidateEntry(e); err != nil {
		return err
	}
	b.append(e)
	return nil
}

func (b *Builder) append(e checklist.Entry) {
	e.Completed = false
	b.entries = append(b.entries, e)
}

// Len returns the number of accumulated entries.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Document returns the assembled document stamped with updatedAt (in UTC).
func (b *Builder) Document(updatedAt time.Time) checklist.Document {
	entries := make([]checklist.Entry, len(b.entries))
	copy(entries, b.entries)
	return checklist.Document{
		Season:    b.season,
		Owner:     b.owner,
		Entries:   entries,
		UpdatedAt: updatedAt.UTC(),
	}
}
