// Package cli dispatches command-line arguments to expense operations and
// renders results as pipe-separated tables.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"expenses/internal/core"
	"expenses/internal/service"
)

const helpText = `An expense recording system

Commands:

add AMOUNT MEMO [DATE] - record a new expense
clear - delete all expenses
list - list all expenses
delete NUMBER - remove expense with id NUMBER
search QUERY - list expenses with a matching memo field
`

// UsageError reports a missing required argument. It aborts the run with a
// non-zero status before any action is taken.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// App wires the dispatcher to its collaborators. Confirm asks the user a
// yes/no question with a single keystroke.
type App struct {
	Service *service.ExpenseService
	Out     io.Writer
	Confirm func(prompt string) (bool, error)
}

// Run executes one command. Unrecognized or missing commands print the
// help text and succeed.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.Out, helpText)
		return nil
	}

	switch args[0] {
	case "add":
		return a.runAdd(ctx, args[1:])
	case "list":
		return a.runList(ctx)
	case "search":
		return a.runSearch(ctx, args[1:])
	case "delete":
		return a.runDelete(ctx, args[1:])
	case "clear":
		return a.runClear(ctx)
	default:
		fmt.Fprint(a.Out, helpText)
		return nil
	}
}

func (a *App) runAdd(ctx context.Context, args []string) error {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return &UsageError{Msg: "You must provide an amount and memo."}
	}
	date := ""
	if len(args) > 2 {
		date = args[2]
	}
	_, err := a.Service.Add(ctx, args[0], args[1], date)
	return err
}

func (a *App) runList(ctx context.Context) error {
	expenses, err := a.Service.List(ctx)
	if err != nil {
		return err
	}
	displayCount(a.Out, len(expenses))
	if len(expenses) > 0 {
		displayExpenses(a.Out, expenses)
	}
	return nil
}

func (a *App) runSearch(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return &UsageError{Msg: "You must provide a query."}
	}
	expenses, err := a.Service.Search(ctx, args[0])
	if err != nil {
		return err
	}
	displayCount(a.Out, len(expenses))
	if len(expenses) > 0 {
		displayExpenses(a.Out, expenses)
	}
	return nil
}

func (a *App) runDelete(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return &UsageError{Msg: "You must provide an id."}
	}
	deleted, err := a.Service.Delete(ctx, args[0])
	if errors.Is(err, core.ErrNoExpense) {
		fmt.Fprintf(a.Out, "There is no expense with the id '%s'.\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "The following expense has been deleted:")
	displayExpenses(a.Out, []core.Expense{deleted})
	return nil
}

func (a *App) runClear(ctx context.Context) error {
	ok, err := a.Confirm("This will remove all expenses. Are you sure? (y/n)")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := a.Service.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "All expenses have been deleted.")
	return nil
}
