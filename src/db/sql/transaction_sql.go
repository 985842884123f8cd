package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"expense-tracker-server/src/models"
)

// Store adapts the pool to the importer's storage interface.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	return InsertTransaction(ctx, s.pool, txn)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func InsertTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, description, category, date, type, payment_method, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := pool.QueryRow(ctx, query,
		txn.UserID,
		txn.Amount.String(),
		txn.Description,
		txn.Category,
		txn.Date,
		txn.Type,
		txn.PaymentMethod,
		models.JoinTags(txn.Tags),
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransactions lists one user's transactions, newest first. Every
// predicate is additive on top of the owner filter.
func GetTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount::text, COALESCE(description, ''), COALESCE(category, 'Uncategorized'),
		       date, type, COALESCE(payment_method, ''), COALESCE(tags, ''), created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		var amount, tags string
		err := rows.Scan(&txn.ID, &txn.UserID, &amount, &txn.Description, &txn.Category,
			&txn.Date, &txn.Type, &txn.PaymentMethod, &tags, &txn.CreatedAt)
		if err != nil {
			return nil, err
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("bad amount for transaction %d: %w", txn.ID, err)
		}
		txn.Tags = models.SplitTags(tags)
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, description = $2, category = $3, date = $4, type = $5, payment_method = $6, tags = $7
		WHERE id = $8 AND user_id = $9
	`
	cmd, err := pool.Exec(ctx, query,
		txn.Amount.String(),
		txn.Description,
		txn.Category,
		txn.Date,
		txn.Type,
		txn.PaymentMethod,
		models.JoinTags(txn.Tags),
		txn.ID,
		txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, txnID int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, txnID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

func GetDistinctCategories(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT COALESCE(category, 'Uncategorized') AS category
		FROM transactions
		WHERE user_id = $1
		ORDER BY 1
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
