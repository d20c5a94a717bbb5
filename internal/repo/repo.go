// Package repo owns the in-memory entry and goal collections. Every mutation
// goes through here and is mirrored to the persistent store; consumers only
// ever see copies.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"driversdash/internal/core"
)

const (
	EntriesKey = "driver-entries"
	GoalsKey   = "driver-goals"
)

// Store is the persistence port. Get returns nil for a key never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backup is the export/import file shape.
type Backup struct {
	Entries []core.Entry `json:"entries"`
	Goals   []core.Goal  `json:"goals"`
}

type Repository struct {
	mu      sync.Mutex
	store   Store
	entries []core.Entry // most-recent-first
	goals   []core.Goal  // insertion order
}

// Open loads both collections from the store once. Missing keys start empty;
// a corrupted value is an error, not silently dropped data.
func Open(ctx context.Context, store Store) (*Repository, error) {
	r := &Repository{store: store}

	raw, err := store.Get(ctx, EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &r.entries); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
	}

	raw, err = store.Get(ctx, GoalsKey)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &r.goals); err != nil {
			return nil, fmt.Errorf("decode goals: %w", err)
		}
	}

	slog.InfoContext(ctx, "Repository loaded", "entries", len(r.entries), "goals", len(r.goals))
	return r, nil
}

// AddEntry assigns a fresh ID, puts the entry first in iteration order and
// persists the collection.
func (r *Repository) AddEntry(ctx context.Context, e core.Entry) core.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = uuid.NewString()
	r.entries = append([]core.Entry{e}, r.entries...)
	r.persistEntries(ctx)
	return e
}

// DeleteEntry removes the entry with the given ID. Deleting an unknown ID is
// a no-op and leaves the persisted value untouched.
func (r *Repository) DeleteEntry(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.persistEntries(ctx)
			return
		}
	}
}

// AddGoal assigns a fresh ID, appends the goal and persists the collection.
func (r *Repository) AddGoal(ctx context.Context, g core.Goal) core.Goal {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = uuid.NewString()
	r.goals = append(r.goals, g)
	r.persistGoals(ctx)
	return g
}

// DeleteGoal removes the goal with the given ID; no-op when absent.
func (r *Repository) DeleteGoal(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, g := range r.goals {
		if g.ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			r.persistGoals(ctx)
			return
		}
	}
}

// Entries returns a copy of the entries, most recent first. The copy is never
// nil so it serializes as a JSON array even when empty.
func (r *Repository) Entries() []core.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]core.Entry, 0, len(r.entries)), r.entries...)
}

// Goals returns a copy of the goals in insertion order, never nil.
func (r *Repository) Goals() []core.Goal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]core.Goal, 0, len(r.goals)), r.goals...)
}

// Snapshot returns both collections for export. Both slices are non-nil so an
// exported file always carries both arrays and re-imports cleanly.
func (r *Repository) Snapshot() Backup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Backup{
		Entries: append(make([]core.Entry, 0, len(r.entries)), r.entries...),
		Goals:   append(make([]core.Goal, 0, len(r.goals)), r.goals...),
	}
}

// Replace swaps both collections wholesale, as an import does. The two keys
// are written one after the other, not atomically together.
func (r *Repository) Replace(ctx context.Context, b Backup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]core.Entry(nil), b.Entries...)
	r.goals = append([]core.Goal(nil), b.Goals...)
	r.persistEntries(ctx)
	r.persistGoals(ctx)
}

// Reset drops all data.
func (r *Repository) Reset(ctx context.Context) {
	r.Replace(ctx, Backup{})
}

// persistEntries mirrors the entries to the store. The in-memory collection
// stays authoritative for the session when the write fails.
func (r *Repository) persistEntries(ctx context.Context) {
	r.persist(ctx, EntriesKey, r.entries)
}

func (r *Repository) persistGoals(ctx context.Context) {
	r.persist(ctx, GoalsKey, r.goals)
}

func (r *Repository) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(ctx, "Encode for persistence failed", "key", key, "error", err)
		return
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		slog.WarnContext(ctx, "Persist failed, in-memory state kept", "key", key, "error", err)
	}
}
