package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	cache "expense-tracker-server/src/db"
	db "expense-tracker-server/src/db/sql"
	"expense-tracker-server/src/models"
)

const dateFormat = "2006-01-02"

type transactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Tags          []string        `json:"tags"`
}

// normalize applies the same rules as CSV import: positive amount, valid
// date, Expense/Income case-insensitively, blank category defaults.
func (req *transactionRequest) normalize(userID int64) (*models.Transaction, string) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, "date must be YYYY-MM-DD"
	}
	if !req.Amount.IsPositive() {
		return nil, "amount must be greater than 0"
	}

	var txnType string
	switch strings.ToLower(strings.TrimSpace(req.Type)) {
	case "expense":
		txnType = models.TypeExpense
	case "income":
		txnType = models.TypeIncome
	default:
		return nil, "type must be Expense or Income"
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	var tags []string
	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return &models.Transaction{
		UserID:        userID,
		Amount:        req.Amount,
		Description:   strings.TrimSpace(req.Description),
		Category:      category,
		Date:          date,
		Type:          txnType,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Tags:          tags,
	}, ""
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txn, msg := req.normalize(userID)
		if msg != "" {
			log.Printf("ERROR: Transaction validation failed for user %d: %s", userID, msg)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if err := db.InsertTransaction(r.Context(), pool, txn); err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}

		cache.ClearCachesForUser(userID)
		log.Printf("INFO: Created transaction id %d for user %d", txn.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(txn)
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		filter, err := parseTransactionFilter(r)
		if err != nil {
			log.Printf("ERROR: Invalid transaction filter for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cacheKey := cache.TransactionListKey(userID, r.URL.RawQuery)
		if cached, found := cache.Cache.Get(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(cached)
			return
		}

		transactions, err := db.GetTransactions(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}

		cache.SetTransactionCache(cacheKey, transactions)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		txnIDStr := chi.URLParam(r, "transaction_id")
		txnID, err := strconv.ParseInt(txnIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", txnIDStr)
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txn, msg := req.normalize(userID)
		if msg != "" {
			log.Printf("ERROR: Transaction validation failed for user %d: %s", userID, msg)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		txn.ID = txnID

		if err := db.UpdateTransaction(r.Context(), pool, txn); err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", txnID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		cache.ClearCachesForUser(userID)
		log.Printf("INFO: Updated transaction id %d for user %d", txnID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(txn)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		txnIDStr := chi.URLParam(r, "transaction_id")
		txnID, err := strconv.ParseInt(txnIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", txnIDStr)
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, txnID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", txnID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		cache.ClearCachesForUser(userID)
		log.Printf("INFO: Deleted transaction id %d for user %d", txnID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		cacheKey := cache.CategoryListKey(userID)
		if cached, found := cache.Cache.Get(cacheKey); found {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(cached)
			return
		}

		categories, err := db.GetDistinctCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}

		cache.SetCategoryCache(cacheKey, categories)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

// parseTransactionFilter reads start_date, end_date, category and type
// query params. Shared by the list and export endpoints.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter
	q := r.URL.Query()

	if raw := q.Get("start_date"); raw != "" {
		start, err := time.Parse(dateFormat, raw)
		if err != nil {
			return filter, fmt.Errorf("start_date must be YYYY-MM-DD, got %q", raw)
		}
		filter.StartDate = &start
	}
	if raw := q.Get("end_date"); raw != "" {
		end, err := time.Parse(dateFormat, raw)
		if err != nil {
			return filter, fmt.Errorf("end_date must be YYYY-MM-DD, got %q", raw)
		}
		filter.EndDate = &end
	}
	filter.Category = q.Get("category")

	switch strings.ToLower(q.Get("type")) {
	case "":
	case "expense":
		filter.Type = models.TypeExpense
	case "income":
		filter.Type = models.TypeIncome
	default:
		return filter, fmt.Errorf("type must be Expense or Income, got %q", q.Get("type"))
	}

	return filter, nil
}
