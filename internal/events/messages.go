package events

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

// Mutation kinds carried on the wire.
const (
	MutationRecorded = "recorded"
	MutationDeleted  = "deleted"
	MutationCleared  = "cleared"
)

// MutationMessage describes one expense mutation. Recorded and deleted
// messages carry the full row snapshot so consumers never need to read
// the database.
type MutationMessage struct {
	Type        string    `json:"type"`
	ID          int64     `json:"id,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Memo        string    `json:"memo,omitempty"`
	CreatedOn   string    `json:"created_on,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewRecordedMessage(e core.Expense) *MutationMessage {
	return newExpenseMessage(MutationRecorded, e)
}

func NewDeletedMessage(e core.Expense) *MutationMessage {
	return newExpenseMessage(MutationDeleted, e)
}

func NewClearedMessage() *MutationMessage {
	return &MutationMessage{
		Type:      MutationCleared,
		Timestamp: time.Now(),
	}
}

func newExpenseMessage(kind string, e core.Expense) *MutationMessage {
	return &MutationMessage{
		Type:        kind,
		ID:          e.ID,
		AmountCents: e.Amount.Cents,
		Memo:        e.Memo,
		CreatedOn:   e.CreatedOn.Format(core.DateLayout),
		Timestamp:   time.Now(),
	}
}

// Expense reconstructs the row snapshot carried by the message.
func (m *MutationMessage) Expense() (core.Expense, error) {
	createdOn, err := core.ParseDate(m.CreatedOn)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		ID:        m.ID,
		Amount:    core.Money{Cents: m.AmountCents},
		Memo:      m.Memo,
		CreatedOn: createdOn,
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func FromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
