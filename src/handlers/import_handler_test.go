package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "expense-tracker-server/src/db"
	"expense-tracker-server/src/importer"
	"expense-tracker-server/src/models"
)

type recordingStore struct {
	inserted []models.Transaction
}

func (s *recordingStore) InsertTransaction(_ context.Context, txn *models.Transaction) error {
	txn.ID = int64(len(s.inserted) + 1)
	s.inserted = append(s.inserted, *txn)
	return nil
}

func (s *recordingStore) Ping(context.Context) error { return nil }

// csvUploadRequest builds a multipart POST with the CSV in the "file"
// field and the given owner on the request context, the same shape the
// auth middleware hands to the handler.
func csvUploadRequest(t *testing.T, userID int64, csvData string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.WithValue(req.Context(), "user_id", userID))
}

func TestImportTransactions_Report(t *testing.T) {
	cache.InitCache()

	csvData := "date,amount,type,category,description,payment_method,tags\n" +
		"2024-01-05,12.50,Expense,Food,lunch,Card,\"work, daily\"\n" +
		"2024-01-06,not-a-number,Expense,Food,,,\n" +
		"2024-01-31,2500,Income,Salary,,Bank,\n"

	store := &recordingStore{}
	rec := httptest.NewRecorder()
	ImportTransactions(store, 0)(rec, csvUploadRequest(t, 7, csvData))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report models.ImportReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Rejected)
	require.Len(t, report.Rejections, 1)
	assert.Equal(t, 2, report.Rejections[0].Row)
	assert.Equal(t, importer.ReasonInvalidAmount, report.Rejections[0].Reason)

	require.Len(t, store.inserted, 2)
	assert.Equal(t, int64(7), store.inserted[0].UserID)
	assert.Equal(t, int64(7), store.inserted[1].UserID)
}

func TestImportTransactions_MalformedFile(t *testing.T) {
	cache.InitCache()

	// Header is missing the required type column.
	csvData := "date,amount,category\n2024-01-05,12.50,Food\n"

	store := &recordingStore{}
	rec := httptest.NewRecorder()
	ImportTransactions(store, 0)(rec, csvUploadRequest(t, 7, csvData))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestImportTransactions_RowLimit(t *testing.T) {
	cache.InitCache()

	csvData := "date,amount,type\n" +
		"2024-01-05,1,Expense\n" +
		"2024-01-06,2,Expense\n"

	store := &recordingStore{}
	rec := httptest.NewRecorder()
	ImportTransactions(store, 1)(rec, csvUploadRequest(t, 7, csvData))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestImportTransactions_MissingFileField(t *testing.T) {
	cache.InitCache()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("notes", "no csv here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(context.WithValue(req.Context(), "user_id", int64(7)))

	store := &recordingStore{}
	rec := httptest.NewRecorder()
	ImportTransactions(store, 0)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}
