// Package service orchestrates expense operations across the store and
// the optional mutation event publisher.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"expenses/internal/core"
	"expenses/internal/events"
	"expenses/internal/store"
)

// Publisher publishes expense mutation messages.
type Publisher interface {
	PublishMutation(ctx context.Context, msg *events.MutationMessage) error
	Close() error
}

type ExpenseService struct {
	store     store.Store
	publisher Publisher
}

// New creates the service. publisher may be nil, which disables event
// publishing entirely.
func New(st store.Store, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: publisher,
	}
}

// Add parses and validates the raw amount and optional date, inserts the
// row, and publishes a recorded event. An empty date means today.
func (s *ExpenseService) Add(ctx context.Context, amountStr, memo, dateStr string) (core.Expense, error) {
	amount, err := core.ParseAmount(amountStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", amountStr, err)
	}
	if strings.TrimSpace(memo) == "" {
		return core.Expense{}, core.ErrEmptyMemo
	}

	createdOn := core.Today()
	if dateStr != "" {
		createdOn, err = core.ParseDate(dateStr)
		if err != nil {
			return core.Expense{}, fmt.Errorf("date %q: %w", dateStr, err)
		}
	}

	e, err := s.store.Add(ctx, amount, memo, createdOn)
	if err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, events.NewRecordedMessage(e))
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx)
}

func (s *ExpenseService) Search(ctx context.Context, query string) ([]core.Expense, error) {
	return s.store.Search(ctx, query)
}

// Delete removes the row with the given raw id and returns it. A missing
// row yields core.ErrNoExpense with no delete performed.
func (s *ExpenseService) Delete(ctx context.Context, idStr string) (core.Expense, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		return core.Expense{}, fmt.Errorf("id %q: not a number", idStr)
	}

	e, err := s.store.Get(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, events.NewDeletedMessage(e))
	return e, nil
}

// Clear unconditionally removes every row.
func (s *ExpenseService) Clear(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	s.publish(ctx, events.NewClearedMessage())
	return nil
}

// publish is best-effort: a failed publish never fails the operation that
// already committed.
func (s *ExpenseService) publish(ctx context.Context, msg *events.MutationMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMutation(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish mutation event",
			"type", msg.Type, "id", msg.ID, "error", err)
	}
}

// Close releases the store and publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Errorf("close: %s", strings.Join(msgs, "; "))
	}
	return nil
}
