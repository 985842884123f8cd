package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"expense-tracker-server/src/models"
)

// TransactionStore commits validated rows. Ping distinguishes a single
// failed insert from a lost storage connection.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	Ping(ctx context.Context) error
}

// Import reads header-driven CSV from r and commits every valid row as a
// transaction owned by userID. Rows are committed independently: one bad
// row never blocks the rest, and a crash mid-import leaves already
// committed rows intact. maxRows <= 0 disables the size cap.
//
// File-level failures (unreadable bytes, bad header, too many rows) return
// an error before any write. Row-level failures are collected into the
// report. Re-importing identical rows inserts them again; there is no
// dedup against existing transactions.
func Import(ctx context.Context, r io.Reader, userID int64, maxRows int, store TransactionStore) (*models.ImportReport, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("import requires an authenticated owner")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrMalformedFile)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // ragged rows are handled per row, not per file

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedFile)
	}

	header, err := resolveHeader(records[0])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	if maxRows > 0 && len(rows) > maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit %d", ErrFileTooLarge, len(rows), maxRows)
	}

	report := &models.ImportReport{}
	for i, record := range rows {
		rowNum := i + 1 // 1-indexed over data rows, header excluded

		txn, rej := validateRow(header, record, userID)
		if rej != nil {
			rej.Row = rowNum
			report.Rejected++
			report.Rejections = append(report.Rejections, *rej)
			continue
		}

		if err := store.InsertTransaction(ctx, &txn); err != nil {
			if pingErr := store.Ping(ctx); pingErr != nil {
				// Connection is gone: abort the batch, keep what committed.
				return report, fmt.Errorf("storage connection lost at row %d: %w", rowNum, err)
			}
			report.Rejected++
			report.Rejections = append(report.Rejections, models.RowRejection{
				Row:    rowNum,
				Reason: ReasonStorageWriteFailed,
				Detail: err.Error(),
			})
			continue
		}
		report.Accepted++
	}

	return report, nil
}
