package transform

import (
	"fmt"
	"io"
	"strings"
)

const (
	reportRule    = "============================================================"
	previewLength = 3
)

// WriteReport prints the human-readable summary of a run: counts, every
// issue in processing order, the output location, and a preview of the
// first converted entries.
func WriteReport(w io.Writer, res *Result, outputPath string) error {
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n" + reportRule + "\n")
		b.WriteString(title + "\n")
		b.WriteString(reportRule + "\n")
	}

	section("TRANSFORMATION REPORT")
	fmt.Fprintf(&b, "\nTotal entries processed: %d\n", res.Stats.Total)
	fmt.Fprintf(&b, "Successfully converted: %d\n", res.Stats.Converted)
	fmt.Fprintf(&b, "Skipped (invalid name): %d\n", res.Stats.InvalidName)
	fmt.Fprintf(&b, "Skipped (no usage): %d\n", res.Stats.NoUsage)
	fmt.Fprintf(&b, "Skipped (ambiguous usage): %d\n", res.Stats.AmbiguousUsage)

	section("ISSUES FOUND (Review These Manually)")
	for _, issue := range res.Issues {
		fmt.Fprintf(&b, "  • %s\n", issue)
	}

	section("OUTPUT")
	fmt.Fprintf(&b, "Created: %s\n", outputPath)
	fmt.Fprintf(&b, "Total Pokemon: %d\n", len(res.Document.Entries))
	b.WriteString("\nSample entries:\n")
	for i, e := range res.Document.Entries {
		if i == previewLength {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", i+1, e.Name, e.Role)
		fmt.Fprintf(&b, "   Types: %s\n", strings.Join(e.Types, ", "))
		if e.Moves != "" {
			fmt.Fprintf(&b, "   Moves: %s\n", e.Moves)
		}
		if e.Notes != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", e.Notes)
		}
	}

	section("NEXT STEPS")
	b.WriteString("1. Review the issues above and manually add/fix ambiguous entries\n")
	b.WriteString("2. Import into the checklist store:\n")
	fmt.Fprintf(&b, "   raidbook import %s\n", outputPath)
	b.WriteString(reportRule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
