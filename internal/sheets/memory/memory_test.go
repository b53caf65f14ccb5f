package memory

import (
	"context"
	"testing"
	"time"

	"expenses/internal/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	e1 := core.Expense{ID: 1, Amount: core.Money{Cents: 1250}, Memo: "Coffee", CreatedOn: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	e2 := core.Expense{ID: 2, Amount: core.Money{Cents: 500}, Memo: "Tea", CreatedOn: e1.CreatedOn}

	if err := s.Append(ctx, e1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, e2); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if rows := s.Rows(); len(rows) != 2 || rows[0].ID != 1 {
		t.Fatalf("Rows = %+v", rows)
	}

	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if rows := s.Rows(); len(rows) != 1 || rows[0].ID != 2 {
		t.Errorf("Rows after Remove = %+v", rows)
	}

	// Removing an absent id is not an error.
	if err := s.Remove(ctx, 99); err != nil {
		t.Errorf("Remove(99) = %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if rows := s.Rows(); len(rows) != 0 {
		t.Errorf("Rows after Clear = %+v", rows)
	}
}
