package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	db "expense-tracker-server/src/db/sql"
)

// GetSummary rolls up income, expense, net and the expense-by-category
// breakdown for a date range. Defaults to the current calendar month.
func GetSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		filter, err := parseTransactionFilter(r)
		if err != nil {
			log.Printf("ERROR: Invalid summary filter for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		start, end := monthBounds(time.Now())
		if filter.StartDate != nil {
			start = *filter.StartDate
		}
		if filter.EndDate != nil {
			end = *filter.EndDate
		}

		summary, err := db.GetSummary(r.Context(), pool, userID, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to compute summary for user %d: %v", userID, err)
			http.Error(w, "failed to compute summary", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// monthBounds returns the first and last day of the month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
