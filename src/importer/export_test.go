package importer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-server/src/models"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestExport_CanonicalHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, nil)
	require.NoError(t, err)

	// header is written even for zero transactions
	assert.Equal(t, "date,amount,type,category,description,payment_method,tags\n", buf.String())
}

func TestExport_Rows(t *testing.T) {
	txns := []models.Transaction{
		{
			Amount:        dec("12.50"),
			Description:   "lunch, with client",
			Category:      "Food",
			Date:          date(2024, 1, 5),
			Type:          models.TypeExpense,
			PaymentMethod: "Card",
			Tags:          []string{"work", "daily"},
		},
		{
			Amount:   dec("2500"),
			Category: "Salary",
			Date:     date(2024, 1, 31),
			Type:     models.TypeIncome,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, txns))

	want := "date,amount,type,category,description,payment_method,tags\n" +
		"2024-01-05,12.5,Expense,Food,\"lunch, with client\",Card,\"work,daily\"\n" +
		"2024-01-31,2500,Income,Salary,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_FullDecimalPrecision(t *testing.T) {
	txns := []models.Transaction{
		{
			Amount:   dec("19.999999"),
			Category: "Fuel",
			Date:     date(2024, 3, 3),
			Type:     models.TypeExpense,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, txns))
	assert.Contains(t, buf.String(), "19.999999")
}

func TestRoundTrip(t *testing.T) {
	original := []models.Transaction{
		{
			UserID:        7,
			Amount:        dec("12.50"),
			Description:   "comma, and \"quotes\"",
			Category:      "Food",
			Date:          date(2024, 1, 5),
			Type:          models.TypeExpense,
			PaymentMethod: "UPI",
			Tags:          []string{"trip", "shared"},
		},
		{
			UserID:   7,
			Amount:   dec("0.01"),
			Category: models.DefaultCategory,
			Date:     date(2024, 12, 31),
			Type:     models.TypeIncome,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, original))

	store := &fakeStore{}
	report, err := Import(context.Background(), &buf, 7, 0, store)
	require.NoError(t, err)
	require.Equal(t, len(original), report.Accepted)
	require.Len(t, store.inserted, len(original))

	for i := range original {
		got := store.inserted[i]
		assert.True(t, original[i].Date.Equal(got.Date), "date mismatch row %d", i)
		assert.True(t, original[i].Amount.Equal(got.Amount), "amount mismatch row %d", i)
		assert.Equal(t, original[i].Type, got.Type)
		assert.Equal(t, original[i].Category, got.Category)
		assert.Equal(t, original[i].Description, got.Description)
		assert.Equal(t, original[i].PaymentMethod, got.PaymentMethod)
		assert.Equal(t, original[i].Tags, got.Tags)
		assert.Equal(t, original[i].UserID, got.UserID)
	}
}
