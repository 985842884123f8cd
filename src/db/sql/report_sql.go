package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"expense-tracker-server/src/models"
)

// GetSummary rolls up income, expense, net and the expense-by-category
// breakdown for a date range.
func GetSummary(ctx context.Context, pool *pgxpool.Pool, userID int64, start, end time.Time) (*models.Summary, error) {
	var income, expense string
	err := pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'Income'), 0)::text,
		       COALESCE(SUM(amount) FILTER (WHERE type = 'Expense'), 0)::text
		FROM transactions
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
	`, userID, start, end).Scan(&income, &expense)
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{}
	if summary.TotalIncome, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("bad income total: %w", err)
	}
	if summary.TotalExpense, err = decimal.NewFromString(expense); err != nil {
		return nil, fmt.Errorf("bad expense total: %w", err)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	rows, err := pool.Query(ctx, `
		SELECT COALESCE(category, 'Uncategorized'), SUM(amount)::text
		FROM transactions
		WHERE user_id = $1 AND type = 'Expense' AND date BETWEEN $2 AND $3
		GROUP BY 1
		ORDER BY SUM(amount) DESC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ct models.CategoryTotal
		var amount string
		if err := rows.Scan(&ct.Category, &amount); err != nil {
			return nil, err
		}
		if ct.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("bad category total for %q: %w", ct.Category, err)
		}
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	return summary, rows.Err()
}
