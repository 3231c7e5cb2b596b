package cli

import (
	"strings"
	"testing"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/seeddb"
	"github.com/raidbook/raidbook/internal/testutil"
)

func withTransformFlags(t *testing.T, out, mapping string) {
	t.Helper()
	prevOut, prevMapping := transformOut, transformMapping
	t.Cleanup(func() { transformOut, transformMapping = prevOut, prevMapping })
	transformOut, transformMapping = out, mapping
}

func TestTransformCommandJSON(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).WithRawSource().Build()
	withTransformFlags(t, ws.Path("out/checklist.json"), "")
	seasonFlag = "christmas_2024"

	resp := runJSON(t, runTransform, transformCmd, ws.Path("raw_data.json"))
	resp.requireOK(t)

	var data transformOutput
	resp.decode(t, &data)
	if data.Stats.Total != 8 || data.Stats.Converted != 4 {
		t.Errorf("stats = %+v, want 8 total, 4 converted", data.Stats)
	}
	if data.Stats.InvalidName != 2 || data.Stats.NoUsage != 1 || data.Stats.AmbiguousUsage != 1 {
		t.Errorf("skip counters = %+v", data.Stats)
	}
	if len(data.Issues) != 4 {
		t.Fatalf("issues = %d, want 4", len(data.Issues))
	}
	if data.Issues[1].Kind != checklist.AmbiguousUsage || data.Issues[1].RawName != "Typhlosion" {
		t.Errorf("second issue = %+v, want Typhlosion ambiguous", data.Issues[1])
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != WarnRowsSkipped {
		t.Errorf("warnings = %+v", resp.Warnings)
	}

	var doc checklist.Document
	ws.ReadJSON("out/checklist.json", &doc)
	if doc.Season != "christmas_2024" || doc.Owner != "default" {
		t.Errorf("document key = %s/%s", doc.Season, doc.Owner)
	}
	var names []string
	for _, e := range doc.Entries {
		names = append(names, e.Name+"/"+string(e.Role))
	}
	want := "Charizard/Special,Charizard/Physical,Arcanine/Physical,Blissey/Support"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("entries = %s, want %s", got, want)
	}

	special := doc.Entries[0]
	if strings.Join(special.Types, ",") != "Fire,Flying,Dragon" {
		t.Errorf("Charizard types = %v", special.Types)
	}
	if special.Moves != "Air Slash, Heat Wave" || special.Ability != "Solar Power" {
		t.Errorf("Charizard fields = %+v", special)
	}
	if doc.Entries[2].Notes != "intimidate lead Choice Band" {
		t.Errorf("Arcanine notes = %q", doc.Entries[2].Notes)
	}
	blissey := doc.Entries[3]
	if strings.Join(blissey.Types, ",") != "Support" || blissey.HeldItem != "Leftovers" {
		t.Errorf("Blissey = %+v", blissey)
	}
	for _, e := range doc.Entries {
		if e.Completed {
			t.Errorf("%s should not be completed", e.Name)
		}
	}
}

func TestTransformCommandTextReport(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).WithRawSource().Build()
	withTransformFlags(t, ws.Path("checklist.json"), "")

	out, err := runText(t, runTransform, transformCmd, ws.Path("raw_data.json"))
	if err != nil {
		t.Fatalf("runTransform: %v", err)
	}
	for _, want := range []string{
		"TRANSFORMATION REPORT",
		"Successfully converted: 4",
		"AMBIGUOUS USAGE (Physical/Special mix): Typhlosion - needs manual classification",
		"NO USAGE: Ninetales in fire (field: '')",
		"raidbook import " + ws.Path("checklist.json"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	ws.AssertFileContains("checklist.json", `"season": "christmas_2024"`)
}

func TestTransformCommandSourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "missing file", source: ""},
		{name: "top level array", source: `[{"Fire": "Charizard"}]`},
		{name: "category not array", source: `{"fire": {"Fire": "Charizard"}}`},
		{name: "malformed", source: `{"fire": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			b := testutil.NewWorkspace(t)
			if tt.source != "" {
				b = b.WithFile("raw_data.json", tt.source)
			}
			ws := b.Build()
			withTransformFlags(t, ws.Path("checklist.json"), "")

			resp := runJSON(t, runTransform, transformCmd, ws.Path("raw_data.json"))
			resp.requireError(t, ErrSourceInvalid)
			if !strings.Contains(resp.Error.Message, "raw_data.json") {
				t.Errorf("error should name the input path: %s", resp.Error.Message)
			}
			ws.AssertFileNotExists("checklist.json")
		})
	}
}

func TestTransformCommandFieldMap(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).
		WithFile("raw.json", `{"ghost": [{"Pokemon": "Gengar", "Role": "special sweeper"}]}`).
		WithFile("fields.yaml", "name: Pokemon\nusage: Role\n").
		Build()
	withTransformFlags(t, ws.Path("checklist.json"), ws.Path("fields.yaml"))

	resp := runJSON(t, runTransform, transformCmd, ws.Path("raw.json"))
	resp.requireOK(t)

	var doc checklist.Document
	ws.ReadJSON("checklist.json", &doc)
	if len(doc.Entries) != 1 || doc.Entries[0].Name != "Gengar" || doc.Entries[0].Role != checklist.Special {
		t.Fatalf("entries = %+v", doc.Entries)
	}
	if doc.Entries[0].Types[0] != "Ghost" {
		t.Errorf("types = %v", doc.Entries[0].Types)
	}
}

func TestTransformCommandBadFieldMap(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).WithRawSource().WithFile("fields.yaml", "name: \"\"\n").Build()
	withTransformFlags(t, ws.Path("checklist.json"), ws.Path("fields.yaml"))

	resp := runJSON(t, runTransform, transformCmd, ws.Path("raw_data.json"))
	resp.requireError(t, ErrFieldMapInvalid)
}

func TestInitDBCommand(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).WithRawSource().Build()
	prev := initdbPath
	t.Cleanup(func() { initdbPath = prev })
	initdbPath = ws.Path("data/checklist.db")

	resp := runJSON(t, runInitDB, initdbCmd, ws.Path("raw_data.json"))
	resp.requireOK(t)

	var data initdbOutput
	resp.decode(t, &data)
	// Only the empty-name and "Level 80" rows are dropped; usage is not checked.
	if data.Stats.Types != 2 || data.Stats.Entries != 7 || data.Stats.Skipped != 1 {
		t.Errorf("stats = %+v", data.Stats)
	}
	want := []seeddb.TypeSummary{
		{TypeName: "fire", Total: 6},
		{TypeName: "Utility", Total: 1},
	}
	if len(data.Types) != len(want) {
		t.Fatalf("types = %+v", data.Types)
	}
	for i := range want {
		if data.Types[i] != want[i] {
			t.Errorf("types[%d] = %+v, want %+v", i, data.Types[i], want[i])
		}
	}
	ws.AssertFileExists("data/checklist.db")
}
