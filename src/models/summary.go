package models

import "github.com/shopspring/decimal"

// Summary is the income/expense rollup for a date range.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	ByCategory   []CategoryTotal `json:"expense_by_category"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
