package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raidbook/raidbook/internal/checklist"
)

type docKey struct{ season, owner string }

type settingsKey struct{ season, typeName string }

// Memory is an in-process store with the same semantics as Mongo.
// Documents are copied on the way in and out.
type Memory struct {
	mu       sync.Mutex
	docs     map[docKey]checklist.Document
	settings map[settingsKey]checklist.TypeSettings
	now      func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[docKey]checklist.Document),
		settings: make(map[settingsKey]checklist.TypeSettings),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func cloneDoc(d checklist.Document) checklist.Document {
	entries := make([]checklist.Entry, len(d.Entries))
	for i, e := range d.Entries {
		e.Types = append([]string(nil), e.Types...)
		entries[i] = e
	}
	d.Entries = entries
	return d
}

// Close is a no-op.
func (m *Memory) Close(context.Context) error { return nil }

// List returns every checklist ordered by season and owner.
func (m *Memory) List(context.Context) ([]checklist.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := make([]checklist.Document, 0, len(m.docs))
	for _, d := range m.docs {
		docs = append(docs, cloneDoc(d))
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Season != docs[j].Season {
			return docs[i].Season < docs[j].Season
		}
		return docs[i].Owner < docs[j].Owner
	})
	return docs, nil
}

// Get returns the checklist for season and owner.
func (m *Memory) Get(_ context.Context, season, owner string) (*checklist.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.docs[docKey{season, owner}]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneDoc(d)
	return &c, nil
}

// Insert stores a new checklist.
func (m *Memory) Insert(_ context.Context, doc checklist.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{doc.Season, doc.Owner}
	if _, ok := m.docs[k]; ok {
		return ErrExists
	}
	m.docs[k] = cloneDoc(doc)
	return nil
}

// Replace overwrites an existing checklist.
func (m *Memory) Replace(_ context.Context, doc checklist.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{doc.Season, doc.Owner}
	if _, ok := m.docs[k]; !ok {
		return ErrNotFound
	}
	m.docs[k] = cloneDoc(doc)
	return nil
}

// SetCompleted sets the completed flag of every entry keyed by name and role.
func (m *Memory) SetCompleted(_ context.Context, season, owner, name string, role checklist.Role, completed bool) (*checklist.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{season, owner}
	d, ok := m.docs[k]
	if !ok || d.Find(name, role) < 0 {
		return nil, ErrEntryNotFound
	}
	for i := range d.Entries {
		if d.Entries[i].Matches(name, role) {
			d.Entries[i].Completed = completed
		}
	}
	d.UpdatedAt = m.now()
	m.docs[k] = d

	e := d.Entries[d.Find(name, role)]
	return &e, nil
}

// AddEntry appends an entry, creating the checklist if needed.
func (m *Memory) AddEntry(_ context.Context, season, owner string, entry checklist.Entry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{season, owner}
	d, ok := m.docs[k]
	if !ok {
		d = checklist.Document{Season: season, Owner: owner}
	}
	entry.Types = append([]string(nil), entry.Types...)
	d.Entries = append(d.Entries, entry)
	d.UpdatedAt = m.now()
	m.docs[k] = d
	return !ok, nil
}

// RemoveEntry deletes every entry keyed by name and role.
func (m *Memory) RemoveEntry(_ context.Context, season, owner, name string, role checklist.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := docKey{season, owner}
	d, ok := m.docs[k]
	if !ok || d.Find(name, role) < 0 {
		return ErrEntryNotFound
	}
	kept := d.Entries[:0]
	for _, e := range d.Entries {
		if !e.Matches(name, role) {
			kept = append(kept, e)
		}
	}
	d.Entries = kept
	d.UpdatedAt = m.now()
	m.docs[k] = d
	return nil
}

// TypeSettings returns the settings for season ordered by type name.
func (m *Memory) TypeSettings(_ context.Context, season string) ([]checklist.TypeSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []checklist.TypeSettings
	for k, ts := range m.settings {
		if k.season == season {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName < out[j].TypeName })
	return out, nil
}

// SaveTypeSettings creates or replaces the settings for one type.
func (m *Memory) SaveTypeSettings(_ context.Context, ts checklist.TypeSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts.UpdatedAt = m.now()
	m.settings[settingsKey{ts.Season, ts.TypeName}] = ts
	return nil
}
