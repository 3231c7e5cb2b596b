package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/store"
	"github.com/raidbook/raidbook/internal/testutil"
)

const importFixture = `{
  "season": "christmas_2024",
  "pokemon": [
    {"name": "Charizard", "usage": "Special", "types": ["Fire", "Flying"], "completed": false},
    {"name": "Charizard", "usage": "Physical", "types": ["fire"], "completed": false},
    {"name": "Gengar", "usage": "Special", "types": ["Ghost", "Poison"], "completed": true}
  ]
}`

// resetCommandFlags restores the flag-backed globals of the checklist
// commands when the test ends.
func resetCommandFlags(t *testing.T) {
	t.Helper()
	prevYes, prevUndo, prevPin := importYes, completeUndo, requirePin
	prevAdd := []string{addName, addTypes, addHeldItem, addAbility, addMoves, addNotes}
	prevRole := addRole
	t.Cleanup(func() {
		importYes, completeUndo, requirePin = prevYes, prevUndo, prevPin
		addName, addTypes, addHeldItem, addAbility, addMoves, addNotes = prevAdd[0], prevAdd[1], prevAdd[2], prevAdd[3], prevAdd[4], prevAdd[5]
		addRole = prevRole
	})
	importYes, completeUndo, requirePin = false, false, false
	addName, addTypes, addHeldItem, addAbility, addMoves, addNotes = "", "", "", "", "", ""
	addRole = ""
}

func importSample(t *testing.T) *store.Memory {
	t.Helper()
	mem, _ := setupCLI(t)
	resetCommandFlags(t)
	ws := testutil.NewWorkspace(t).WithFile("checklist.json", importFixture).Build()

	resp := runJSON(t, runImport, importCmd, ws.Path("checklist.json"))
	resp.requireOK(t)
	return mem
}

func TestImportNormalizesDocument(t *testing.T) {
	mem := importSample(t)

	doc, err := mem.Get(context.Background(), "christmas_2024", "default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(doc.Entries))
	}
	if got := strings.Join(doc.Entries[0].Types, ","); got != "FIRE,FLYING" {
		t.Errorf("types = %s, want FIRE,FLYING", got)
	}
	if !doc.Entries[2].Completed {
		t.Error("completed flag should be preserved on import")
	}
	if doc.UpdatedAt.IsZero() {
		t.Error("updated_at should be stamped")
	}
}

func TestChecklistWorkflow(t *testing.T) {
	mem := importSample(t)

	resp := runJSON(t, runPokemon, pokemonCmd, "christmas_2024")
	resp.requireOK(t)
	var listed struct {
		Season    string            `json:"season"`
		Pokemon   []checklist.Entry `json:"pokemon"`
		Completed int               `json:"completed"`
	}
	resp.decode(t, &listed)
	if len(listed.Pokemon) != 3 || listed.Completed != 1 {
		t.Fatalf("pokemon = %d entries, %d completed", len(listed.Pokemon), listed.Completed)
	}

	resp = runJSON(t, runComplete, completeCmd, "Charizard", "Physical")
	resp.requireOK(t)
	var completed struct {
		Entry checklist.Entry `json:"entry"`
	}
	resp.decode(t, &completed)
	if !completed.Entry.Completed || completed.Entry.Role != checklist.Physical {
		t.Errorf("complete returned %+v", completed.Entry)
	}

	doc, _ := mem.Get(context.Background(), "christmas_2024", "default")
	if doc.Entries[0].Completed {
		t.Error("Special Charizard must not be completed")
	}

	resp = runJSON(t, runTypes, typesCmd)
	resp.requireOK(t)
	var types struct {
		Types []typeCount `json:"types"`
	}
	resp.decode(t, &types)
	want := []typeCount{
		{Type: "FIRE", Completed: 1, Total: 2},
		{Type: "FLYING", Completed: 0, Total: 1},
		{Type: "GHOST", Completed: 1, Total: 1},
		{Type: "POISON", Completed: 1, Total: 1},
	}
	if len(types.Types) != len(want) {
		t.Fatalf("types = %+v", types.Types)
	}
	for i := range want {
		if types.Types[i] != want[i] {
			t.Errorf("types[%d] = %+v, want %+v", i, types.Types[i], want[i])
		}
	}

	completeUndo = true
	out, err := runText(t, runComplete, completeCmd, "Gengar", "Special", "christmas_2024")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !strings.Contains(out, "Gengar (Special) is now not completed") || !strings.Contains(out, "Types: GHOST, POISON") {
		t.Errorf("undo output = %q", out)
	}
}

func TestCompleteErrors(t *testing.T) {
	importSample(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{name: "unknown usage", args: []string{"Charizard", "physical"}, code: ErrInvalidInput},
		{name: "missing role", args: []string{"Charizard", "Support"}, code: ErrEntryNotFound},
		{name: "missing entry", args: []string{"Mew", "Special"}, code: ErrEntryNotFound},
		{name: "other season", args: []string{"Charizard", "Special", "summer_2025"}, code: ErrEntryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := runJSON(t, runComplete, completeCmd, tt.args...)
			resp.requireError(t, tt.code)
		})
	}
}

func TestPokemonMissingChecklist(t *testing.T) {
	setupCLI(t)
	resp := runJSON(t, runPokemon, pokemonCmd, "summer_2025")
	resp.requireError(t, ErrChecklistNotFound)
	if !strings.Contains(resp.Error.Message, "summer_2025") {
		t.Errorf("message should name the season: %s", resp.Error.Message)
	}
}

func TestShowListsChecklists(t *testing.T) {
	importSample(t)

	resp := runJSON(t, runShow, showCmd)
	resp.requireOK(t)
	var data struct {
		Checklists []checklistSummary `json:"checklists"`
	}
	resp.decode(t, &data)
	if len(data.Checklists) != 1 {
		t.Fatalf("checklists = %+v", data.Checklists)
	}
	got := data.Checklists[0]
	if got.Season != "christmas_2024" || got.Owner != "default" || got.Total != 3 || got.Completed != 1 {
		t.Errorf("summary = %+v", got)
	}
}

func TestShowEmptyStoreText(t *testing.T) {
	setupCLI(t)
	out, err := runText(t, runShow, showCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No checklists stored") {
		t.Errorf("output = %q", out)
	}
}

func TestImportExistingChecklist(t *testing.T) {
	t.Run("declined in JSON mode", func(t *testing.T) {
		importSample(t)
		ws := testutil.NewWorkspace(t).WithFile("again.json", importFixture).Build()

		resp := runJSON(t, runImport, importCmd, ws.Path("again.json"))
		resp.requireError(t, ErrConfirmationRequired)
	})

	t.Run("declined in text mode", func(t *testing.T) {
		importSample(t)
		fp := prompt.(*fakePrompter)
		ws := testutil.NewWorkspace(t).WithFile("again.json", importFixture).Build()

		out, err := runText(t, runImport, importCmd, ws.Path("again.json"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Import cancelled") {
			t.Errorf("output = %q", out)
		}
		if len(fp.asked) != 1 || !strings.Contains(fp.asked[0], "already exists") {
			t.Errorf("prompts = %v", fp.asked)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		mem := importSample(t)
		prompt.(*fakePrompter).confirm = true
		ws := testutil.NewWorkspace(t).
			WithFile("again.json", `{"season": "christmas_2024", "pokemon": [{"name": "Lapras", "usage": "Special", "types": ["water", "ice"]}]}`).
			Build()

		resp := runJSON(t, runImport, importCmd, ws.Path("again.json"))
		resp.requireOK(t)
		var data struct {
			Action string `json:"action"`
		}
		resp.decode(t, &data)
		if data.Action != "updated" {
			t.Errorf("action = %s, want updated", data.Action)
		}
		doc, _ := mem.Get(context.Background(), "christmas_2024", "default")
		if len(doc.Entries) != 1 || doc.Entries[0].Name != "Lapras" {
			t.Errorf("entries = %+v", doc.Entries)
		}
	})

	t.Run("yes flag skips prompt", func(t *testing.T) {
		importSample(t)
		fp := prompt.(*fakePrompter)
		importYes = true
		ws := testutil.NewWorkspace(t).WithFile("again.json", importFixture).Build()

		resp := runJSON(t, runImport, importCmd, ws.Path("again.json"))
		resp.requireOK(t)
		if len(fp.asked) != 0 {
			t.Errorf("--yes should not prompt, asked %v", fp.asked)
		}
	})
}

func TestImportRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{name: "no season", content: `{"pokemon": []}`, code: ErrFileReadError},
		{name: "malformed", content: `{"season": `, code: ErrFileReadError},
		{name: "invalid usage", content: `{"season": "s", "pokemon": [{"name": "Mew", "usage": "Mixed", "types": ["psychic"]}]}`, code: ErrEntryInvalid},
		{name: "no types", content: `{"season": "s", "pokemon": [{"name": "Mew", "usage": "Special", "types": []}]}`, code: ErrEntryInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem, _ := setupCLI(t)
			resetCommandFlags(t)
			ws := testutil.NewWorkspace(t).WithFile("bad.json", tt.content).Build()

			resp := runJSON(t, runImport, importCmd, ws.Path("bad.json"))
			resp.requireError(t, tt.code)
			if docs, _ := mem.List(context.Background()); len(docs) != 0 {
				t.Errorf("nothing should be stored, got %d docs", len(docs))
			}
		})
	}
}

func TestImportDefaultsOwner(t *testing.T) {
	importSample(t)
	resp := runJSON(t, runShow, showCmd)
	var data struct {
		Checklists []checklistSummary `json:"checklists"`
	}
	resp.decode(t, &data)
	if data.Checklists[0].Owner != checklist.DefaultOwner {
		t.Errorf("owner = %q", data.Checklists[0].Owner)
	}
}

func TestAddWithFlags(t *testing.T) {
	mem, _ := setupCLI(t)
	resetCommandFlags(t)
	addName = "Snorlax"
	if err := newRoleValue(&addRole).Set("Physical"); err != nil {
		t.Fatal(err)
	}
	addTypes = "normal, Normal"
	addHeldItem = "Leftovers"

	resp := runJSON(t, runAdd, addCmd, "summer_2025")
	resp.requireOK(t)
	var data struct {
		Entry   checklist.Entry `json:"entry"`
		Created bool            `json:"created"`
	}
	resp.decode(t, &data)
	if !data.Created {
		t.Error("first add should create the checklist")
	}
	if strings.Join(data.Entry.Types, ",") != "NORMAL" {
		t.Errorf("types = %v", data.Entry.Types)
	}

	doc, err := mem.Get(context.Background(), "summer_2025", "default")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].HeldItem != "Leftovers" || doc.Entries[0].Completed {
		t.Errorf("stored = %+v", doc.Entries)
	}
}

func TestAddPromptsWithoutName(t *testing.T) {
	mem, fp := setupCLI(t)
	resetCommandFlags(t)
	fp.entry = checklist.Entry{Name: "Gengar", Role: checklist.Special, Types: []string{"GHOST"}}

	out, err := runText(t, runAdd, addCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Added Gengar (Special) to christmas_2024") {
		t.Errorf("output = %q", out)
	}
	if _, err := mem.Get(context.Background(), "christmas_2024", "default"); err != nil {
		t.Errorf("checklist not created: %v", err)
	}
}

func TestAddErrors(t *testing.T) {
	t.Run("json without name", func(t *testing.T) {
		setupCLI(t)
		resetCommandFlags(t)
		resp := runJSON(t, runAdd, addCmd)
		resp.requireError(t, ErrMissingArgument)
	})

	t.Run("missing types", func(t *testing.T) {
		setupCLI(t)
		resetCommandFlags(t)
		addName, addRole = "Mew", checklist.Special
		resp := runJSON(t, runAdd, addCmd)
		resp.requireError(t, ErrEntryInvalid)
	})

	t.Run("prompt error", func(t *testing.T) {
		_, fp := setupCLI(t)
		resetCommandFlags(t)
		fp.entryErr = checklist.ErrEmptyName
		_, err := runText(t, runAdd, addCmd)
		if !errors.Is(err, checklist.ErrEmptyName) {
			t.Errorf("err = %v, want ErrEmptyName", err)
		}
	})
}

func TestRemoveEntry(t *testing.T) {
	mem := importSample(t)

	resp := runJSON(t, runRemove, removeCmd, "Charizard", "Special")
	resp.requireOK(t)
	doc, _ := mem.Get(context.Background(), "christmas_2024", "default")
	if len(doc.Entries) != 2 || doc.Find("Charizard", checklist.Special) >= 0 {
		t.Errorf("entries after remove = %+v", doc.Entries)
	}

	resp = runJSON(t, runRemove, removeCmd, "Charizard", "Special")
	resp.requireError(t, ErrEntryNotFound)
}

func TestRequireSetsMinimum(t *testing.T) {
	importSample(t)
	requirePin = true

	resp := runJSON(t, runRequire, requireCmd, "fire", "3")
	resp.requireOK(t)
	var ts checklist.TypeSettings
	resp.decode(t, &ts)
	if ts.TypeName != "FIRE" || ts.MinRequired != 3 || !ts.IsPinned || ts.Season != "christmas_2024" {
		t.Errorf("settings = %+v", ts)
	}

	resp = runJSON(t, runTypes, typesCmd, "christmas_2024")
	var data struct {
		Types []typeCount `json:"types"`
	}
	resp.decode(t, &data)
	if data.Types[0].Type != "FIRE" || data.Types[0].MinRequired != 3 || !data.Types[0].Pinned {
		t.Errorf("FIRE = %+v", data.Types[0])
	}

	out, err := runText(t, runTypes, typesCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "min 3") || !strings.Contains(out, "pinned") {
		t.Errorf("types output = %q", out)
	}
}

func TestRequireRejectsBadMinimum(t *testing.T) {
	setupCLI(t)
	for _, arg := range []string{"-1", "three"} {
		resp := runJSON(t, runRequire, requireCmd, "fire", arg)
		resp.requireError(t, ErrInvalidInput)
	}
}

func TestExportRoundTrip(t *testing.T) {
	importSample(t)
	ws := testutil.NewWorkspace(t).Build()
	out := ws.Path("export/christmas.json")

	resp := runJSON(t, runExport, exportCmd, "christmas_2024", out)
	resp.requireOK(t)
	var file exportedFile
	resp.decode(t, &file)
	if file.Count != 3 || file.Path != out {
		t.Errorf("exported = %+v", file)
	}

	var doc checklist.Document
	ws.ReadJSON("export/christmas.json", &doc)
	if doc.Season != "christmas_2024" || len(doc.Entries) != 3 {
		t.Errorf("exported doc = %+v", doc)
	}

	// The export imports back over the stored checklist.
	importYes = true
	resp = runJSON(t, runImport, importCmd, out)
	resp.requireOK(t)
}

func TestExportMissingSeason(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).Build()
	resp := runJSON(t, runExport, exportCmd, "summer_2025", ws.Path("out.json"))
	resp.requireError(t, ErrChecklistNotFound)
	ws.AssertFileNotExists("out.json")
}

func TestExportAll(t *testing.T) {
	mem := importSample(t)
	ctx := context.Background()
	if err := mem.Insert(ctx, checklist.Document{
		Season:  "summer_2025",
		Owner:   "ash",
		Entries: []checklist.Entry{{Name: "Pikachu", Role: checklist.Special, Types: []string{"ELECTRIC"}}},
	}); err != nil {
		t.Fatal(err)
	}
	ws := testutil.NewWorkspace(t).Build()

	resp := runJSON(t, runExportAll, exportAllCmd, ws.Dir)
	resp.requireOK(t)
	var data struct {
		Directory string         `json:"directory"`
		Files     []exportedFile `json:"files"`
	}
	resp.decode(t, &data)
	if data.Directory != filepath.Join(ws.Dir, "checklists") || len(data.Files) != 2 {
		t.Fatalf("export-all = %+v", data)
	}
	ws.AssertFileContains("checklists/christmas_2024.json", `"season": "christmas_2024"`)
	ws.AssertFileContains("checklists/summer_2025-ash.json", `"Pikachu"`)
}

func TestExportAllEmptyStore(t *testing.T) {
	setupCLI(t)
	ws := testutil.NewWorkspace(t).Build()
	resp := runJSON(t, runExportAll, exportAllCmd, ws.Dir)
	resp.requireError(t, ErrChecklistNotFound)
}

func TestStoreUnreachable(t *testing.T) {
	setupCLI(t)
	openStore = func(context.Context) (checklistStore, error) {
		return nil, errors.New("server selection timeout")
	}

	resp := runJSON(t, runShow, showCmd)
	resp.requireError(t, ErrDatabaseConnect)
	if resp.Error.Suggestion == "" {
		t.Error("expected a suggestion for unreachable store")
	}

	_, err := runText(t, runShow, showCmd)
	if err == nil || !strings.Contains(err.Error(), "MONGO_URI") {
		t.Errorf("text mode error = %v", err)
	}
}

func TestOwnerFromConfig(t *testing.T) {
	mem, _ := setupCLI(t)
	resetCommandFlags(t)
	cfg.Owner = "misty"
	addName, addRole, addTypes = "Starmie", checklist.Special, "water"

	resp := runJSON(t, runAdd, addCmd)
	resp.requireOK(t)
	if _, err := mem.Get(context.Background(), "christmas_2024", "misty"); err != nil {
		t.Errorf("entry should be stored for the configured owner: %v", err)
	}
}
