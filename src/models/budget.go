package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit. Category is nil for the overall
// monthly budget; (user_id, year_month, category) is unique.
type Budget struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	YearMonth string          `json:"year_month"` // format YYYY-MM
	Category  *string         `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetProgress pairs a budget with the month's matching expense total.
type BudgetProgress struct {
	Budget    Budget          `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}
