package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupExpense is a shared expense paid by one user and split across several.
type GroupExpense struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	PayerID     int64           `json:"payer_id"`
	PayerName   string          `json:"payer_name,omitempty"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	IsSettled   bool            `json:"is_settled"`
	SettledAt   *time.Time      `json:"settled_at"`
	CreatedAt   time.Time       `json:"created_at"`
	Shares      []ExpenseShare  `json:"shares,omitempty"`
}

// ExpenseShare is one participant's slice of a group expense.
type ExpenseShare struct {
	ID             int64           `json:"id"`
	GroupExpenseID int64           `json:"group_expense_id"`
	UserID         int64           `json:"user_id"`
	ShareAmount    decimal.Decimal `json:"share_amount"`
	IsSettled      bool            `json:"is_settled"`
	SettledAt      *time.Time      `json:"settled_at"`
}
