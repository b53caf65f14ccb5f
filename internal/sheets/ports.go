package sheets

import (
	"context"

	"expenses/internal/core"
)

// Mirror is the outbound port for keeping an external sheet in step with
// the expenses table.
type Mirror interface {
	// Append adds one expense row to the mirror.
	Append(ctx context.Context, e core.Expense) error
	// Remove drops the mirrored row with the given expense id.
	Remove(ctx context.Context, id int64) error
	// Clear drops every mirrored row.
	Clear(ctx context.Context) error
}
