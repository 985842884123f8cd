package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"expense-tracker-server/src/models"
)

// exportHeader is the canonical column order. Export output fed back into
// Import reproduces the same transactions, ids aside.
var exportHeader = []string{
	colDate, colAmount, colType, colCategory, colDescription, colPaymentMethod, colTags,
}

// Export writes transactions as CSV with the canonical header. Amounts keep
// full decimal precision, dates render as YYYY-MM-DD, tags rejoin on comma.
func Export(w io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		record := []string{
			txn.Date.Format(dateFormat),
			txn.Amount.String(),
			txn.Type,
			txn.Category,
			txn.Description,
			txn.PaymentMethod,
			models.JoinTags(txn.Tags),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}
