package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"expense-tracker-server/src/config"
	db "expense-tracker-server/src/db/sql"
	"expense-tracker-server/src/handlers"
	"expense-tracker-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/register", handlers.Register(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/users", handlers.ListUsers(pool))
			r.Get("/user", handlers.GetUser(pool))
			r.Put("/user", handlers.UpdateUser(pool))
			r.Post("/user/change-password", handlers.ChangePassword(pool))
			r.Delete("/user", handlers.DeleteUser(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Get("/transactions/categories", handlers.GetCategories(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// CSV import/export
			r.Post("/transactions/import", handlers.ImportTransactions(db.NewStore(pool), cfg.ImportMaxRows))
			r.Get("/transactions/export", handlers.ExportTransactions(pool))

			// Budgets
			r.Post("/budgets", handlers.SetBudget(pool))
			r.Get("/budgets", handlers.GetBudgets(pool))
			r.Get("/budgets/progress", handlers.GetBudgetProgress(pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

			// Summary
			r.Get("/summary", handlers.GetSummary(pool))

			// Group expenses
			r.Post("/group-expenses", handlers.CreateGroupExpense(pool))
			r.Get("/group-expenses", handlers.GetGroupExpenses(pool))
			r.Post("/group-expenses/shares/{share_id}/settle", handlers.SettleExpenseShare(pool))
		})
	})

	return r
}
