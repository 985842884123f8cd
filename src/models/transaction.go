package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeExpense = "Expense"
	TypeIncome  = "Income"

	// DefaultCategory is substituted for a blank category on entry and import.
	DefaultCategory = "Uncategorized"
)

type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Tags          []string        `json:"tags"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFilter narrows a user's transaction listing. Nil/empty fields
// mean no restriction.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Type      string
}

// JoinTags renders tags in storage form, comma-delimited.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses the comma-delimited storage form. Entries are trimmed,
// empties dropped, order preserved, duplicates kept.
func SplitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
