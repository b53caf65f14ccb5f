package cli

import (
	"fmt"
	"io"
	"strings"

	"expenses/internal/core"
)

const separatorWidth = 50

// displayCount prints the result-set size. The phrasing is fixed: no
// singular form for a count of one.
func displayCount(w io.Writer, count int) {
	if count == 0 {
		fmt.Fprintln(w, "There are no expenses.")
		return
	}
	fmt.Fprintf(w, "There are %d expenses.\n", count)
}

// displayExpenses prints one formatted row per expense followed by the
// total line. Callers are expected to pass a non-empty slice.
func displayExpenses(w io.Writer, expenses []core.Expense) {
	for _, e := range expenses {
		fmt.Fprintln(w, formatRow(e))
	}
	fmt.Fprintln(w, strings.Repeat("-", separatorWidth))
	fmt.Fprintf(w, "Total %25s\n", core.Total(expenses).String())
}

// formatRow renders id, date and amount right-justified to fixed widths,
// memo unpadded, joined with " | ".
func formatRow(e core.Expense) string {
	return fmt.Sprintf("%3d | %10s | %12s | %s",
		e.ID,
		e.CreatedOn.Format(core.DateLayout),
		e.Amount.String(),
		e.Memo)
}
