package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "expense-tracker-server/src/db/sql"
	"expense-tracker-server/src/models"
	"expense-tracker-server/src/util"
)

// SetBudget creates or replaces the limit for (month, category). A null or
// empty category sets the overall monthly budget.
func SetBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			YearMonth string          `json:"year_month"`
			Category  *string         `json:"category"`
			Amount    decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode set budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if !util.ValidateYearMonth(req.YearMonth) {
			http.Error(w, "year_month must be YYYY-MM", http.StatusBadRequest)
			return
		}
		if !req.Amount.IsPositive() {
			http.Error(w, "amount must be greater than 0", http.StatusBadRequest)
			return
		}
		if req.Category != nil {
			trimmed := strings.TrimSpace(*req.Category)
			if trimmed == "" {
				req.Category = nil
			} else {
				req.Category = &trimmed
			}
		}

		budget := &models.Budget{
			UserID:    userID,
			YearMonth: req.YearMonth,
			Category:  req.Category,
			Amount:    req.Amount,
		}
		saved, err := db.SetBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to set budget for user %d: %v", userID, err)
			http.Error(w, "failed to set budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Set budget id %d for user %d, month %s", saved.ID, userID, saved.YearMonth)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(saved)
	}
}

func GetBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		yearMonth := r.URL.Query().Get("month")
		if !util.ValidateYearMonth(yearMonth) {
			http.Error(w, "month query param must be YYYY-MM", http.StatusBadRequest)
			return
		}

		budgets, err := db.GetBudgetsForMonth(r.Context(), pool, userID, yearMonth)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

// GetBudgetProgress reports each budget with the month's matching expense
// total and the remaining headroom (negative when over budget).
func GetBudgetProgress(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		yearMonth := r.URL.Query().Get("month")
		if !util.ValidateYearMonth(yearMonth) {
			http.Error(w, "month query param must be YYYY-MM", http.StatusBadRequest)
			return
		}

		budgets, err := db.GetBudgetsForMonth(r.Context(), pool, userID, yearMonth)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}

		progress := make([]models.BudgetProgress, 0, len(budgets))
		for _, budget := range budgets {
			spent, err := db.GetMonthlyExpenseTotal(r.Context(), pool, userID, yearMonth, budget.Category)
			if err != nil {
				log.Printf("ERROR: Failed to total expenses for user %d, month %s: %v", userID, yearMonth, err)
				http.Error(w, "failed to compute budget progress", http.StatusInternalServerError)
				return
			}
			progress = append(progress, models.BudgetProgress{
				Budget:    budget,
				Spent:     spent,
				Remaining: budget.Amount.Sub(spent),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(progress)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.ParseInt(budgetIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}
