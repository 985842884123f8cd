package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expense-tracker-server/src/models"
)

const dateFormat = "2006-01-02"

const (
	colDate          = "date"
	colAmount        = "amount"
	colType          = "type"
	colCategory      = "category"
	colDescription   = "description"
	colPaymentMethod = "payment_method"
	colTags          = "tags"
)

var requiredColumns = []string{colDate, colAmount, colType}
var optionalColumns = []string{colCategory, colDescription, colPaymentMethod, colTags}

// headerIndex maps canonical column names to positions in the file,
// resolved once per import. -1 means the column is absent.
type headerIndex map[string]int

// resolveHeader matches the header row against the canonical column names.
// Column order is free, names are case-sensitive. A required column missing
// from the header fails the whole file.
func resolveHeader(header []string) (headerIndex, error) {
	idx := make(headerIndex, len(requiredColumns)+len(optionalColumns))
	for _, name := range requiredColumns {
		idx[name] = -1
	}
	for _, name := range optionalColumns {
		idx[name] = -1
	}
	for i, name := range header {
		if _, known := idx[name]; known {
			idx[name] = i
		}
	}
	for _, name := range requiredColumns {
		if idx[name] < 0 {
			return nil, fmt.Errorf("%w: header is missing required column %q", ErrMalformedFile, name)
		}
	}
	return idx, nil
}

// value returns the raw cell for a column, and whether the record reaches
// that column at all. Absent optional columns read as empty.
func (h headerIndex) value(record []string, name string) (string, bool) {
	i := h[name]
	if i < 0 {
		// only optional columns can be absent once the header resolved
		return "", true
	}
	if i >= len(record) {
		return "", false
	}
	return record[i], true
}

// validateRow turns one raw record into a normalized Transaction or a
// rejection. Pure: no storage or network access. The owner always comes
// from the authenticated caller, never from the file.
func validateRow(h headerIndex, record []string, userID int64) (models.Transaction, *models.RowRejection) {
	rawDate, ok := h.value(record, colDate)
	if !ok {
		return models.Transaction{}, reject(ReasonMissingField, colDate)
	}
	date, err := time.Parse(dateFormat, strings.TrimSpace(rawDate))
	if err != nil {
		return models.Transaction{}, reject(ReasonInvalidDate, rawDate)
	}

	rawAmount, ok := h.value(record, colAmount)
	if !ok {
		return models.Transaction{}, reject(ReasonMissingField, colAmount)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(rawAmount))
	if err != nil || !amount.IsPositive() {
		return models.Transaction{}, reject(ReasonInvalidAmount, rawAmount)
	}

	rawType, ok := h.value(record, colType)
	if !ok {
		return models.Transaction{}, reject(ReasonMissingField, colType)
	}
	var txnType string
	switch strings.ToLower(strings.TrimSpace(rawType)) {
	case "expense":
		txnType = models.TypeExpense
	case "income":
		txnType = models.TypeIncome
	default:
		return models.Transaction{}, reject(ReasonInvalidType, rawType)
	}

	category, _ := h.value(record, colCategory)
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.DefaultCategory
	}

	description, _ := h.value(record, colDescription)
	paymentMethod, _ := h.value(record, colPaymentMethod)
	rawTags, _ := h.value(record, colTags)

	return models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Description:   strings.TrimSpace(description),
		Category:      category,
		Date:          date,
		Type:          txnType,
		PaymentMethod: strings.TrimSpace(paymentMethod),
		Tags:          models.SplitTags(rawTags),
	}, nil
}

func reject(reason, detail string) *models.RowRejection {
	return &models.RowRejection{Reason: reason, Detail: detail}
}
