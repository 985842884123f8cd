package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"expense-tracker-server/src/config"
)

// The pool is never touched: unauthenticated requests are rejected by the
// JWT middleware before any handler runs, which is exactly what these
// route-registration checks rely on.
func TestNewRouter_Routes(t *testing.T) {
	router := NewRouter(nil, config.Config{AllowedOrigin: "*"})

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health is public", http.MethodGet, "/health", http.StatusOK},
		{"users listing is registered and protected", http.MethodGet, "/api/users", http.StatusUnauthorized},
		{"transactions are protected", http.MethodGet, "/api/transactions", http.StatusUnauthorized},
		{"import is protected", http.MethodPost, "/api/transactions/import", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
