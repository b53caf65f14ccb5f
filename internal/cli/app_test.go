package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/service"
	"expenses/internal/store"
)

// testApp wires a real SQLite store into the dispatcher with output
// captured in a buffer. confirm is what the clear prompt will answer.
func testApp(t *testing.T, confirm bool) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		StoreBackend: "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "expenses.db"),
	}
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}

	svc := service.New(st, nil)
	t.Cleanup(func() { svc.Close() })

	var out bytes.Buffer
	app := &App{
		Service: svc,
		Out:     &out,
		Confirm: func(prompt string) (bool, error) {
			out.WriteString(prompt + "\n")
			return confirm, nil
		},
	}
	return app, &out
}

func run(t *testing.T, app *App, args ...string) error {
	t.Helper()
	return app.Run(context.Background(), args)
}

func mustRun(t *testing.T, app *App, args ...string) {
	t.Helper()
	if err := run(t, app, args...); err != nil {
		t.Fatalf("Run(%v): %v", args, err)
	}
}

func TestRun_HelpText(t *testing.T) {
	want := `An expense recording system

Commands:

add AMOUNT MEMO [DATE] - record a new expense
clear - delete all expenses
list - list all expenses
delete NUMBER - remove expense with id NUMBER
search QUERY - list expenses with a matching memo field
`

	t.Run("no arguments", func(t *testing.T) {
		app, out := testApp(t, false)
		mustRun(t, app)
		if out.String() != want {
			t.Errorf("help output = %q, want %q", out.String(), want)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		app, out := testApp(t, false)
		mustRun(t, app, "frobnicate")
		if out.String() != want {
			t.Errorf("help output = %q, want %q", out.String(), want)
		}
	})
}

func TestRun_ListEmpty(t *testing.T) {
	app, out := testApp(t, false)
	mustRun(t, app, "list")
	if out.String() != "There are no expenses.\n" {
		t.Errorf("list output = %q", out.String())
	}
}

func TestRun_AddThenList(t *testing.T) {
	app, out := testApp(t, false)

	mustRun(t, app, "add", "12.50", "Coffee", "2024-01-14")
	mustRun(t, app, "add", "5.00", "Tea", "2024-01-15")
	if out.Len() != 0 {
		t.Errorf("add printed %q, want nothing", out.String())
	}

	mustRun(t, app, "list")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "There are 2 expenses." {
		t.Errorf("count line = %q", lines[0])
	}
	// Most recent first.
	if !strings.Contains(lines[1], "Tea") || !strings.Contains(lines[2], "Coffee") {
		t.Errorf("row order wrong: %q / %q", lines[1], lines[2])
	}
	if lines[3] != strings.Repeat("-", 50) {
		t.Errorf("separator = %q", lines[3])
	}
	wantTotal := "Total                     17.50"
	if lines[4] != wantTotal {
		t.Errorf("total line = %q, want %q", lines[4], wantTotal)
	}
}

func TestRun_AddDefaultsToToday(t *testing.T) {
	app, out := testApp(t, false)

	mustRun(t, app, "add", "12.5", "Coffee")
	mustRun(t, app, "list")

	today := time.Now().Format(core.DateLayout)
	if !strings.Contains(out.String(), today) {
		t.Errorf("list output %q should contain today's date %s", out.String(), today)
	}
	// 12.5 renders with two decimals.
	if !strings.Contains(out.String(), "12.50") {
		t.Errorf("list output %q should contain 12.50", out.String())
	}
}

func TestRun_AddUsageErrors(t *testing.T) {
	tests := [][]string{
		{"add"},
		{"add", "12.50"},
		{"add", "", "Coffee"},
		{"add", "12.50", ""},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			app, _ := testApp(t, false)
			err := run(t, app, args...)
			var uerr *UsageError
			if !errors.As(err, &uerr) {
				t.Fatalf("Run(%v) = %v, want UsageError", args, err)
			}
			if uerr.Msg != "You must provide an amount and memo." {
				t.Errorf("message = %q", uerr.Msg)
			}
		})
	}
}

func TestRun_AddInvalidAmount(t *testing.T) {
	app, out := testApp(t, false)

	err := run(t, app, "add", "not-money", "Coffee")
	if err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		t.Fatalf("non-numeric amount should be a data-layer failure, got UsageError %v", uerr)
	}

	// No partial action.
	out.Reset()
	mustRun(t, app, "list")
	if out.String() != "There are no expenses.\n" {
		t.Errorf("table changed after failed add: %q", out.String())
	}
}

func TestRun_Search(t *testing.T) {
	app, out := testApp(t, false)

	mustRun(t, app, "add", "12.50", "Morning coffee", "2024-01-13")
	mustRun(t, app, "add", "8.00", "COFFEE beans", "2024-01-14")
	mustRun(t, app, "add", "2.50", "Bus ticket", "2024-01-15")

	t.Run("case-insensitive substring", func(t *testing.T) {
		out.Reset()
		mustRun(t, app, "search", "coffee")
		got := out.String()
		if !strings.HasPrefix(got, "There are 2 expenses.\n") {
			t.Errorf("search output = %q", got)
		}
		if !strings.Contains(got, "Morning coffee") || !strings.Contains(got, "COFFEE beans") {
			t.Errorf("search output missing matches: %q", got)
		}
		if strings.Contains(got, "Bus ticket") {
			t.Errorf("search output has non-match: %q", got)
		}
		if !strings.Contains(got, "Total                     20.50") {
			t.Errorf("search total wrong: %q", got)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		out.Reset()
		mustRun(t, app, "search", "yacht")
		if out.String() != "There are no expenses.\n" {
			t.Errorf("search output = %q", out.String())
		}
	})

	t.Run("missing query", func(t *testing.T) {
		err := run(t, app, "search")
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("Run(search) = %v, want UsageError", err)
		}
	})
}

func TestRun_Delete(t *testing.T) {
	app, out := testApp(t, false)

	mustRun(t, app, "add", "12.50", "Coffee", "2024-01-15")
	out.Reset()

	mustRun(t, app, "delete", "1")
	got := out.String()
	if !strings.HasPrefix(got, "The following expense has been deleted:\n") {
		t.Errorf("delete output = %q", got)
	}
	if !strings.Contains(got, "Coffee") || !strings.Contains(got, "12.50") {
		t.Errorf("delete output missing row: %q", got)
	}
	if !strings.Contains(got, "Total                     12.50") {
		t.Errorf("delete output missing total: %q", got)
	}

	out.Reset()
	mustRun(t, app, "list")
	if out.String() != "There are no expenses.\n" {
		t.Errorf("row still present after delete: %q", out.String())
	}
}

func TestRun_DeleteMissingID(t *testing.T) {
	app, out := testApp(t, false)

	mustRun(t, app, "add", "12.50", "Coffee", "2024-01-15")
	out.Reset()

	// Informational, not an error.
	mustRun(t, app, "delete", "999")
	if out.String() != "There is no expense with the id '999'.\n" {
		t.Errorf("delete output = %q", out.String())
	}

	out.Reset()
	mustRun(t, app, "list")
	if !strings.Contains(out.String(), "Coffee") {
		t.Errorf("table changed by no-match delete: %q", out.String())
	}
}

func TestRun_DeleteUsageError(t *testing.T) {
	app, _ := testApp(t, false)
	err := run(t, app, "delete")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("Run(delete) = %v, want UsageError", err)
	}
}

func TestRun_DeleteNonNumericID(t *testing.T) {
	app, _ := testApp(t, false)
	err := run(t, app, "delete", "abc")
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		t.Fatal("non-numeric id should be a data-layer failure, not a usage error")
	}
}

func TestRun_Clear(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		app, out := testApp(t, true)
		mustRun(t, app, "add", "12.50", "Coffee", "2024-01-15")
		out.Reset()

		mustRun(t, app, "clear")
		got := out.String()
		if !strings.Contains(got, "This will remove all expenses. Are you sure? (y/n)") {
			t.Errorf("clear output missing prompt: %q", got)
		}
		if !strings.Contains(got, "All expenses have been deleted.") {
			t.Errorf("clear output missing confirmation: %q", got)
		}

		out.Reset()
		mustRun(t, app, "list")
		if out.String() != "There are no expenses.\n" {
			t.Errorf("rows remain after confirmed clear: %q", out.String())
		}
	})

	t.Run("declined", func(t *testing.T) {
		app, out := testApp(t, false)
		mustRun(t, app, "add", "12.50", "Coffee", "2024-01-15")
		out.Reset()

		mustRun(t, app, "clear")
		if strings.Contains(out.String(), "All expenses have been deleted.") {
			t.Errorf("declined clear still reported deletion: %q", out.String())
		}

		out.Reset()
		mustRun(t, app, "list")
		if !strings.Contains(out.String(), "Coffee") {
			t.Errorf("rows removed despite declined clear: %q", out.String())
		}
	})
}
