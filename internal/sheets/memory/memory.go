// Package memory is an in-memory Mirror used in tests and as a stand-in
// when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"expenses/internal/core"
	ports "expenses/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Expense
}

var _ ports.Mirror = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
	return nil
}

func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.rows {
		if e.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

// Rows returns a copy of the mirrored rows in append order.
func (s *Store) Rows() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.rows))
	copy(out, s.rows)
	return out
}
