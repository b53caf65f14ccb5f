package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used everywhere: storage, rendering
// and the optional DATE argument to add.
const DateLayout = "2006-01-02"

type Expense struct {
	ID        int64
	Amount    Money
	Memo      string
	CreatedOn time.Time
}

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyMemo     = errors.New("empty memo")

	// ErrNoExpense marks a lookup or delete of an id that has no row.
	ErrNoExpense = errors.New("no expense with that id")
)

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Memo) == "" {
		return ErrEmptyMemo
	}
	if e.CreatedOn.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today returns the current calendar date with no time component.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
