package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"expense-tracker-server/src/models"
)

// SetBudget upserts the limit for (user, month, category). A nil category
// is the overall monthly budget. The update path matches it with
// IS NOT DISTINCT FROM rather than an ON CONFLICT arbiter, which would
// treat NULL categories as distinct and insert a duplicate overall
// budget on every save.
func SetBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	var b models.Budget
	var amount string
	err := pool.QueryRow(ctx, `
		UPDATE budgets
		SET amount = $4
		WHERE user_id = $1 AND year_month = $2 AND category IS NOT DISTINCT FROM $3
		RETURNING id, user_id, year_month, category, amount::text, created_at
	`, budget.UserID, budget.YearMonth, budget.Category, budget.Amount.String()).
		Scan(&b.ID, &b.UserID, &b.YearMonth, &b.Category, &amount, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = pool.QueryRow(ctx, `
			INSERT INTO budgets (user_id, year_month, category, amount)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, year_month, category, amount::text, created_at
		`, budget.UserID, budget.YearMonth, budget.Category, budget.Amount.String()).
			Scan(&b.ID, &b.UserID, &b.YearMonth, &b.Category, &amount, &b.CreatedAt)
	}
	if err != nil {
		return nil, err
	}
	b.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount for budget %d: %w", b.ID, err)
	}
	return &b, nil
}

func GetBudgetsForMonth(ctx context.Context, pool *pgxpool.Pool, userID int64, yearMonth string) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, year_month, category, amount::text, created_at
		FROM budgets
		WHERE user_id = $1 AND year_month = $2
		ORDER BY category NULLS FIRST
	`
	rows, err := pool.Query(ctx, query, userID, yearMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		var amount string
		err := rows.Scan(&b.ID, &b.UserID, &b.YearMonth, &b.Category, &amount, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("bad amount for budget %d: %w", b.ID, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("budget not found")
	}
	return nil
}

// GetMonthlyExpenseTotal sums a month's expenses, optionally for one
// category, for budget progress.
func GetMonthlyExpenseTotal(ctx context.Context, pool *pgxpool.Pool, userID int64, yearMonth string, category *string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE user_id = $1 AND type = 'Expense' AND to_char(date, 'YYYY-MM') = $2
	`
	args := []interface{}{userID, yearMonth}
	if category != nil {
		args = append(args, *category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total string
	if err := pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	spent, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad expense total: %w", err)
	}
	return spent, nil
}
