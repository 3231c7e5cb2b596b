// Package testutil provides fixture helpers for raidbook tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Workspace is a temporary directory holding input and output files for
// one test.
type Workspace struct {
	Dir   string
	t     *testing.T
	files map[string]string
}

// NewWorkspace returns a builder for a workspace rooted in t.TempDir().
// Call Build to write the configured files.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{t: t, files: make(map[string]string)}
}

// WithFile adds a file relative to the workspace root.
func (w *Workspace) WithFile(rel, content string) *Workspace {
	w.files[rel] = content
	return w
}

// WithRawSource adds the sample spreadsheet export as raw_data.json.
func (w *Workspace) WithRawSource() *Workspace {
	return w.WithFile("raw_data.json", RawSourceJSON)
}

// Build creates the directory and writes every configured file.
func (w *Workspace) Build() *Workspace {
	w.t.Helper()
	w.Dir = w.t.TempDir()
	for rel, content := range w.files {
		w.write(rel, content)
	}
	return w
}

// Path returns the absolute path of rel.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Dir, filepath.FromSlash(rel))
}

func (w *Workspace) write(rel, content string) {
	w.t.Helper()
	full := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		w.t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		w.t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// WriteFile writes content to rel after Build and returns the absolute path.
func (w *Workspace) WriteFile(rel, content string) string {
	w.t.Helper()
	w.write(rel, content)
	return w.Path(rel)
}

// ReadFile returns the content of rel, failing the test if it is missing.
func (w *Workspace) ReadFile(rel string) string {
	w.t.Helper()
	data, err := os.ReadFile(w.Path(rel))
	if err != nil {
		w.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// ReadJSON decodes rel into v.
func (w *Workspace) ReadJSON(rel string, v any) {
	w.t.Helper()
	if err := json.Unmarshal([]byte(w.ReadFile(rel)), v); err != nil {
		w.t.Fatalf("failed to decode %s: %v", rel, err)
	}
}

// AssertFileExists fails the test if rel does not exist.
func (w *Workspace) AssertFileExists(rel string) {
	w.t.Helper()
	if _, err := os.Stat(w.Path(rel)); err != nil {
		w.t.Errorf("expected file to exist: %s", rel)
	}
}

// AssertFileNotExists fails the test if rel exists.
func (w *Workspace) AssertFileNotExists(rel string) {
	w.t.Helper()
	if _, err := os.Stat(w.Path(rel)); err == nil {
		w.t.Errorf("expected file to not exist: %s", rel)
	}
}

// AssertFileContains fails the test if rel does not contain substr.
func (w *Workspace) AssertFileContains(rel, substr string) {
	w.t.Helper()
	content := w.ReadFile(rel)
	if !strings.Contains(content, substr) {
		w.t.Errorf("expected file %s to contain %q, got:\n%s", rel, substr, content)
	}
}
