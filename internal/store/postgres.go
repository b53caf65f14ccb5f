package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expenses/internal/core"

	_ "github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func openPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, "postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, amount core.Money, memo string, createdOn time.Time) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO expenses (amount, memo, created_on)
		 VALUES ($1, $2, $3)
		 RETURNING id, amount::text, memo, created_on`,
		amount.String(), memo, createdOn)
	e, err := scanPostgresExpense(row)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, amount::text, memo, created_on FROM expenses
		 ORDER BY created_on DESC`)
}

func (s *PostgresStore) Search(ctx context.Context, query string) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, amount::text, memo, created_on FROM expenses
		 WHERE memo ILIKE '%' || $1 || '%'
		 ORDER BY created_on DESC`, query)
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount::text, memo, created_on FROM expenses WHERE id = $1`, id)
	e, err := scanPostgresExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNoExpense
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanPostgresExpense(rows)
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

func scanPostgresExpense(row rowScanner) (core.Expense, error) {
	var (
		e      core.Expense
		amount string
	)
	if err := row.Scan(&e.ID, &amount, &e.Memo, &e.CreatedOn); err != nil {
		return core.Expense{}, err
	}
	parsed, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.Amount = parsed
	e.CreatedOn = e.CreatedOn.Truncate(24 * time.Hour)
	return e, nil
}
