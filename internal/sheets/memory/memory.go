// Package memory is an in-process BackupAppender used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"driversdash/internal/core"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendEntry(_ context.Context, e core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Entry(nil), s.rows...)
}
