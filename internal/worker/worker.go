// Package worker mirrors stored entries to the external backup sheet. It
// consumes entry-created events and periodically sweeps the store for entries
// the events missed.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"driversdash/internal/amqp"
	"driversdash/internal/core"
	"driversdash/internal/repo"
	"driversdash/internal/sheets"
)

// Store is the read side of the key-value store the server writes to.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

type BackupWorker struct {
	store    Store
	appender sheets.BackupAppender

	mu       sync.Mutex
	mirrored map[string]bool // entry IDs appended during this process lifetime
}

func NewBackupWorker(store Store, appender sheets.BackupAppender) *BackupWorker {
	return &BackupWorker{
		store:    store,
		appender: appender,
		mirrored: make(map[string]bool),
	}
}

// HandleEntryCreated mirrors the entry named by the event. The entry may not
// be in the store yet when the event races the server's write; that is an
// error so the delivery gets requeued.
func (w *BackupWorker) HandleEntryCreated(ctx context.Context, msg *amqp.EntryCreatedMessage) error {
	entry, err := w.findEntry(ctx, msg.EntryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry %s not found in store", msg.EntryID)
	}
	return w.mirror(ctx, *entry)
}

// SweepOnce appends every stored entry not yet mirrored in this process
// lifetime. Run at startup and on a timer to cover lost events.
func (w *BackupWorker) SweepOnce(ctx context.Context) error {
	entries, err := w.loadEntries(ctx)
	if err != nil {
		return err
	}

	var mirrored, failed int
	// Oldest first so the sheet roughly follows insertion order.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if w.alreadyMirrored(e.ID) {
			continue
		}
		if err := w.mirror(ctx, e); err != nil {
			slog.WarnContext(ctx, "Sweep failed to mirror entry", "entry_id", e.ID, "error", err)
			failed++
			continue
		}
		mirrored++
	}

	if mirrored > 0 || failed > 0 {
		slog.InfoContext(ctx, "Backup sweep finished", "mirrored", mirrored, "failed", failed)
	}
	if failed > 0 {
		return fmt.Errorf("sweep: %d entries failed to mirror", failed)
	}
	return nil
}

func (w *BackupWorker) findEntry(ctx context.Context, id string) (*core.Entry, error) {
	entries, err := w.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (w *BackupWorker) loadEntries(ctx context.Context) ([]core.Entry, error) {
	raw, err := w.store.Get(ctx, repo.EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var entries []core.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

func (w *BackupWorker) mirror(ctx context.Context, e core.Entry) error {
	if w.alreadyMirrored(e.ID) {
		return nil
	}
	if err := w.appender.AppendEntry(ctx, e); err != nil {
		return fmt.Errorf("append entry %s: %w", e.ID, err)
	}
	w.mu.Lock()
	w.mirrored[e.ID] = true
	w.mu.Unlock()
	return nil
}

func (w *BackupWorker) alreadyMirrored(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mirrored[id]
}
