package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense-tracker/internal/dates"
	"expense-tracker/internal/models"
	"expense-tracker/internal/money"
)

const expenseColumns = "id, description, amount, category, created_date"

// CreateExpense inserts a new expense and returns it with its assigned ID.
// No validation happens here; a zero date defaults to today.
func (db *DB) CreateExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	e.Date = dates.Truncate(e.Date)

	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO expenses (description, amount, category, created_date) VALUES (?, ?, ?, ?)",
		e.Description, e.Amount, e.Category, dates.Format(e.Date),
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	e.ID = id
	return &e, nil
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?",
		id,
	)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// UpdateExpense overwrites every field of an existing expense.
func (db *DB) UpdateExpense(ctx context.Context, e models.Expense) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	result, err := db.conn.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount = ?, category = ?, created_date = ? WHERE id = ?",
		e.Description, e.Amount, e.Category, dates.Format(dates.Truncate(e.Date)), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	return requireAffected(result)
}

// DeleteExpense permanently removes an expense.
func (db *DB) DeleteExpense(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return requireAffected(result)
}

// ListExpenses returns the matching expenses, newest first. Entries of the
// same day are ordered by descending ID.
func (db *DB) ListExpenses(ctx context.Context, f models.Filter) ([]models.Expense, error) {
	return db.listExpenses(ctx, f, "created_date DESC, id DESC")
}

// ListExpensesAscending returns the matching expenses, oldest first.
func (db *DB) ListExpensesAscending(ctx context.Context, f models.Filter) ([]models.Expense, error) {
	return db.listExpenses(ctx, f, "created_date ASC, id ASC")
}

func (db *DB) listExpenses(ctx context.Context, f models.Filter, order string) ([]models.Expense, error) {
	where, args := whereClause(f)
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses"+where+" ORDER BY "+order,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// CategoryTotals sums the matching expenses per category, one row per
// category present in the filtered set.
func (db *DB) CategoryTotals(ctx context.Context, f models.Filter) ([]models.CategoryTotal, error) {
	where, args := whereClause(f)
	rows, err := db.conn.QueryContext(ctx,
		"SELECT category, COALESCE(SUM(amount), 0), COUNT(*) FROM expenses"+where+
			" GROUP BY category ORDER BY category",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("category totals: %w", err)
		}
		ct.Total = money.Round(ct.Total)
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// DailyTotals sums the matching expenses per day, oldest day first.
func (db *DB) DailyTotals(ctx context.Context, f models.Filter) ([]models.DayTotal, error) {
	where, args := whereClause(f)
	rows, err := db.conn.QueryContext(ctx,
		"SELECT created_date, COALESCE(SUM(amount), 0) FROM expenses"+where+
			" GROUP BY created_date ORDER BY created_date",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []models.DayTotal
	for rows.Next() {
		var day string
		var dt models.DayTotal
		if err := rows.Scan(&day, &dt.Total); err != nil {
			return nil, fmt.Errorf("daily totals: %w", err)
		}
		parsed, ok := dates.Parse(day)
		if !ok {
			return nil, fmt.Errorf("daily totals: malformed stored date %q", day)
		}
		dt.Date = parsed
		dt.Total = money.Round(dt.Total)
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}

// SumTotal returns the summed amount of the matching expenses rounded to
// 2 decimals, or 0 when nothing matches.
func (db *DB) SumTotal(ctx context.Context, f models.Filter) (float64, error) {
	where, args := whereClause(f)
	var total float64
	err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses"+where,
		args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum total: %w", err)
	}
	return money.Round(total), nil
}

// CountExpenses returns the number of stored expenses.
func (db *DB) CountExpenses(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*models.Expense, error) {
	var e models.Expense
	var day string
	if err := s.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &day); err != nil {
		return nil, err
	}
	parsed, ok := dates.Parse(day)
	if !ok {
		return nil, fmt.Errorf("malformed stored date %q for expense %d", day, e.ID)
	}
	e.Date = parsed
	return &e, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
