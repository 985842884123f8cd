package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "expense-tracker-server/src/db/sql"
	"expense-tracker-server/src/models"
)

// CreateGroupExpense records a shared expense paid by the caller. Shares
// must cover the full amount; the caller's own share is whatever the
// other participants' shares leave over.
func CreateGroupExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			Title       string          `json:"title"`
			Amount      decimal.Decimal `json:"amount"`
			Category    string          `json:"category"`
			Date        string          `json:"date"`
			Description string          `json:"description"`
			Shares      []struct {
				UserID int64           `json:"user_id"`
				Amount decimal.Decimal `json:"amount"`
			} `json:"shares"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create group expense request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		if !req.Amount.IsPositive() {
			http.Error(w, "amount must be greater than 0", http.StatusBadRequest)
			return
		}
		date, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if len(req.Shares) == 0 {
			http.Error(w, "at least one share is required", http.StatusBadRequest)
			return
		}

		total := decimal.Zero
		shares := make([]models.ExpenseShare, 0, len(req.Shares))
		for _, share := range req.Shares {
			if !share.Amount.IsPositive() {
				http.Error(w, "share amounts must be greater than 0", http.StatusBadRequest)
				return
			}
			total = total.Add(share.Amount)
			shares = append(shares, models.ExpenseShare{UserID: share.UserID, ShareAmount: share.Amount})
		}
		if !total.Equal(req.Amount) {
			http.Error(w, "share amounts must equal total amount", http.StatusBadRequest)
			return
		}

		expense := &models.GroupExpense{
			Title:       req.Title,
			Amount:      req.Amount,
			PayerID:     userID,
			Category:    strings.TrimSpace(req.Category),
			Date:        date,
			Description: strings.TrimSpace(req.Description),
			Shares:      shares,
		}
		if err := db.CreateGroupExpense(r.Context(), pool, expense); err != nil {
			log.Printf("ERROR: Failed to create group expense for user %d: %v", userID, err)
			http.Error(w, "failed to create group expense", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created group expense id %d for payer %d with %d shares", expense.ID, userID, len(expense.Shares))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(expense)
	}
}

func GetGroupExpenses(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		expenses, err := db.GetGroupExpenses(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get group expenses for user %d: %v", userID, err)
			http.Error(w, "failed to get group expenses", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

func SettleExpenseShare(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		shareIDStr := chi.URLParam(r, "share_id")
		shareID, err := strconv.ParseInt(shareIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid share id param: %s", shareIDStr)
			http.Error(w, "invalid share id", http.StatusBadRequest)
			return
		}

		if err := db.SettleExpenseShare(r.Context(), pool, userID, shareID); err != nil {
			log.Printf("ERROR: Failed to settle share id %d for user %d: %v", shareID, userID, err)
			http.Error(w, "share not found", http.StatusNotFound)
			return
		}

		log.Printf("INFO: Settled share id %d for user %d", shareID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "share settled"})
	}
}
