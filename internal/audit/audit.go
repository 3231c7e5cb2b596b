// Package audit keeps an append-only JSON-lines log of checklist changes.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Operations recorded by the CLI.
const (
	OpImport   = "import"
	OpReplace  = "replace"
	OpAdd      = "add"
	OpRemove   = "remove"
	OpComplete = "complete"
	OpUndo     = "undo"
	OpRequire  = "require"
)

// Entry is one recorded change.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`
	Season    string                 `json:"season"`
	Owner     string                 `json:"user_id,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Usage     string                 `json:"usage,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Log appends entries to a file. A Log with an empty path records nothing.
type Log struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New returns a log writing to path. An empty path disables the log.
func New(path string) *Log {
	return &Log{path: path, now: func() time.Time { return time.Now().UTC() }}
}

// Enabled reports whether entries are written anywhere.
func (l *Log) Enabled() bool {
	return l != nil && l.path != ""
}

// Record appends e, stamping the timestamp when unset.
func (l *Log) Record(e Entry) error {
	if !l.Enabled() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// Read returns every entry for season, oldest first. An empty season
// returns all entries. Malformed lines are skipped.
func (l *Log) Read(season string) ([]Entry, error) {
	if !l.Enabled() {
		return nil, nil
	}
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		if season == "" || e.Season == season {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}
