package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"expenses/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func openSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A single connection keeps statements sequential and makes in-memory
	// databases behave: each pooled connection would otherwise get its own.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, "sqlite"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, amount core.Money, memo string, createdOn time.Time) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO expenses (amount_cents, memo, created_on)
		 VALUES (?, ?, ?)
		 RETURNING id, amount_cents, memo, created_on`,
		amount.Cents, memo, createdOn.Format(core.DateLayout))
	e, err := scanSQLiteExpense(row)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, amount_cents, memo, created_on FROM expenses
		 ORDER BY created_on DESC`)
}

func (s *SQLiteStore) Search(ctx context.Context, query string) ([]core.Expense, error) {
	// SQLite LIKE is case-insensitive for ASCII, which covers the
	// ILIKE-style substring contract.
	return s.queryExpenses(ctx,
		`SELECT id, amount_cents, memo, created_on FROM expenses
		 WHERE memo LIKE '%' || ? || '%'
		 ORDER BY created_on DESC`, query)
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, memo, created_on FROM expenses WHERE id = ?`, id)
	e, err := scanSQLiteExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNoExpense
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanSQLiteExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteExpense(row rowScanner) (core.Expense, error) {
	var (
		e    core.Expense
		date string
	)
	if err := row.Scan(&e.ID, &e.Amount.Cents, &e.Memo, &date); err != nil {
		return core.Expense{}, err
	}
	createdOn, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse created_on %q: %w", date, err)
	}
	e.CreatedOn = createdOn
	return e, nil
}
