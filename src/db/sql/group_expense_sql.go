package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"expense-tracker-server/src/models"
)

// CreateGroupExpense inserts the expense and its shares in one transaction
// so a partial split can never be observed.
func CreateGroupExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.GroupExpense) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO group_expenses (title, amount, payer_id, category, date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		expense.Title,
		expense.Amount.String(),
		expense.PayerID,
		expense.Category,
		expense.Date,
		expense.Description,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.GroupExpenseID = expense.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO group_expense_shares (group_expense_id, user_id, share_amount)
			VALUES ($1, $2, $3)
			RETURNING id
		`, share.GroupExpenseID, share.UserID, share.ShareAmount.String()).Scan(&share.ID)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetGroupExpenses lists expenses where the user is payer or share-holder,
// with the payer's name and the user's own share attached.
func GetGroupExpenses(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.GroupExpense, error) {
	query := `
		SELECT ge.id, ge.title, ge.amount::text, ge.payer_id, u.name,
		       COALESCE(ge.category, ''), ge.date, COALESCE(ge.description, ''),
		       ge.is_settled, ge.settled_at, ge.created_at,
		       ges.id, ges.user_id, ges.share_amount::text, ges.is_settled, ges.settled_at
		FROM group_expenses ge
		JOIN users u ON ge.payer_id = u.id
		JOIN group_expense_shares ges ON ge.id = ges.group_expense_id
		WHERE ges.user_id = $1 OR ge.payer_id = $1
		ORDER BY ge.date DESC, ge.id DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.GroupExpense
	byID := make(map[int64]int)
	for rows.Next() {
		var ge models.GroupExpense
		var share models.ExpenseShare
		var amount, shareAmount string
		err := rows.Scan(&ge.ID, &ge.Title, &amount, &ge.PayerID, &ge.PayerName,
			&ge.Category, &ge.Date, &ge.Description,
			&ge.IsSettled, &ge.SettledAt, &ge.CreatedAt,
			&share.ID, &share.UserID, &shareAmount, &share.IsSettled, &share.SettledAt)
		if err != nil {
			return nil, err
		}
		ge.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("bad amount for group expense %d: %w", ge.ID, err)
		}
		share.GroupExpenseID = ge.ID
		share.ShareAmount, err = decimal.NewFromString(shareAmount)
		if err != nil {
			return nil, fmt.Errorf("bad share amount for expense %d: %w", ge.ID, err)
		}

		if idx, seen := byID[ge.ID]; seen {
			expenses[idx].Shares = append(expenses[idx].Shares, share)
			continue
		}
		ge.Shares = []models.ExpenseShare{share}
		byID[ge.ID] = len(expenses)
		expenses = append(expenses, ge)
	}
	return expenses, rows.Err()
}

// SettleExpenseShare marks the caller's share settled; when the last open
// share closes, the expense itself is marked settled.
func SettleExpenseShare(ctx context.Context, pool *pgxpool.Pool, userID, shareID int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE group_expense_shares
		SET is_settled = TRUE, settled_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, shareID, userID)
	if err != nil {
		return fmt.Errorf("failed to settle share: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("share not found")
	}

	var expenseID int64
	err = tx.QueryRow(ctx, `
		SELECT group_expense_id FROM group_expense_shares WHERE id = $1
	`, shareID).Scan(&expenseID)
	if err != nil {
		return fmt.Errorf("failed to look up expense for share: %w", err)
	}

	var pending int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM group_expense_shares
		WHERE group_expense_id = $1 AND NOT is_settled
	`, expenseID).Scan(&pending)
	if err != nil {
		return fmt.Errorf("failed to count open shares: %w", err)
	}

	if pending == 0 {
		_, err = tx.Exec(ctx, `
			UPDATE group_expenses
			SET is_settled = TRUE, settled_at = NOW()
			WHERE id = $1
		`, expenseID)
		if err != nil {
			return fmt.Errorf("failed to settle expense: %w", err)
		}
	}

	return tx.Commit(ctx)
}
