package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zaptest"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/config"
	"github.com/raidbook/raidbook/internal/store"
)

var captureStdoutMu sync.Mutex

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	defer func() {
		os.Stdout = orig
	}()
	fn()
	_ = w.Close()
	os.Stdout = orig
	return <-done
}

type testResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

// runJSON runs a command handler in JSON mode and decodes the envelope.
func runJSON(t *testing.T, run func(*cobra.Command, []string) error, cmd *cobra.Command, args ...string) testResponse {
	t.Helper()
	jsonOutput = true

	var runErr error
	out := captureStdout(t, func() {
		runErr = run(cmd, args)
	})
	if runErr != nil {
		t.Fatalf("%s returned error in JSON mode: %v", cmd.Name(), runErr)
	}

	var resp testResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp
}

// runText runs a command handler in text mode and returns stdout and the
// handler's error.
func runText(t *testing.T, run func(*cobra.Command, []string) error, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false

	var runErr error
	out := captureStdout(t, func() {
		runErr = run(cmd, args)
	})
	return out, runErr
}

func (r testResponse) decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v; data=%s", err, r.Data)
	}
}

func (r testResponse) requireOK(t *testing.T) {
	t.Helper()
	if !r.OK {
		t.Fatalf("expected ok=true, got error %+v", r.Error)
	}
}

func (r testResponse) requireError(t *testing.T, code string) {
	t.Helper()
	if r.OK || r.Error == nil {
		t.Fatalf("expected error %s, got ok response: %s", code, r.Data)
	}
	if r.Error.Code != code {
		t.Fatalf("error code = %s, want %s (%s)", r.Error.Code, code, r.Error.Message)
	}
}

type fakePrompter struct {
	confirm  bool
	entry    checklist.Entry
	entryErr error
	asked    []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.asked = append(p.asked, message)
	return p.confirm
}

func (p *fakePrompter) EntryFields(string) (checklist.Entry, error) {
	return p.entry, p.entryErr
}

// setupCLI swaps the package globals for an in-memory store, default config
// and a fake prompter, restoring them when the test ends.
func setupCLI(t *testing.T) (*store.Memory, *fakePrompter) {
	t.Helper()

	prevCfg, prevLogger, prevOpen, prevPrompt := cfg, logger, openStore, prompt
	prevJSON, prevSeason, prevOwner := jsonOutput, seasonFlag, ownerFlag
	t.Cleanup(func() {
		cfg, logger, openStore, prompt = prevCfg, prevLogger, prevOpen, prevPrompt
		jsonOutput, seasonFlag, ownerFlag = prevJSON, prevSeason, prevOwner
	})

	mem := store.NewMemory()
	fp := &fakePrompter{}

	cfg = config.Default()
	logger = zaptest.NewLogger(t)
	openStore = func(context.Context) (checklistStore, error) { return mem, nil }
	prompt = fp
	seasonFlag, ownerFlag = "", ""
	return mem, fp
}
