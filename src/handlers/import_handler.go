package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "expense-tracker-server/src/db"
	db "expense-tracker-server/src/db/sql"
	"expense-tracker-server/src/importer"
)

// maxUploadBytes caps the multipart body; the row cap is enforced
// separately by the importer.
const maxUploadBytes = 10 << 20

// ImportTransactions accepts a CSV upload in the "file" multipart field
// and responds with the per-row import report. It takes the importer's
// store interface so the route wires in the pool-backed store while
// tests substitute their own.
func ImportTransactions(store importer.TransactionStore, maxRows int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, _, err := r.FormFile("file")
		if err != nil {
			log.Printf("ERROR: Missing or unreadable upload for user %d: %v", userID, err)
			http.Error(w, "csv upload required in field \"file\"", http.StatusBadRequest)
			return
		}
		defer file.Close()

		report, err := importer.Import(r.Context(), file, userID, maxRows, store)
		if report != nil && report.Accepted > 0 {
			cache.ClearCachesForUser(userID)
		}
		if err != nil {
			switch {
			case errors.Is(err, importer.ErrFileTooLarge):
				log.Printf("ERROR: Import file too large for user %d: %v", userID, err)
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			case errors.Is(err, importer.ErrMalformedFile):
				log.Printf("ERROR: Malformed import file for user %d: %v", userID, err)
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Printf("ERROR: Import aborted for user %d: %v", userID, err)
				http.Error(w, "import aborted", http.StatusInternalServerError)
			}
			return
		}

		log.Printf("INFO: Imported %d rows (%d rejected) for user %d", report.Accepted, report.Rejected, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// ExportTransactions streams the caller's filtered transactions as CSV,
// the exact inverse of import.
func ExportTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		filter, err := parseTransactionFilter(r)
		if err != nil {
			log.Printf("ERROR: Invalid export filter for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		transactions, err := db.GetTransactions(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to load transactions for export, user %d: %v", userID, err)
			http.Error(w, "failed to export transactions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		if err := importer.Export(w, transactions); err != nil {
			log.Printf("ERROR: Failed to write CSV export for user %d: %v", userID, err)
			return
		}

		log.Printf("INFO: Exported %d transactions for user %d", len(transactions), userID)
	}
}
