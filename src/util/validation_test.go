package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.domain.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Str0ng!pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidatePassword(tt.password), "password %q", tt.password)
	}
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Priya"))
	assert.False(t, ValidateName("   "))
	assert.False(t, ValidateName(""))
}

func TestValidateYearMonth(t *testing.T) {
	assert.True(t, ValidateYearMonth("2024-01"))
	assert.True(t, ValidateYearMonth("2024-12"))
	assert.False(t, ValidateYearMonth("2024-13"))
	assert.False(t, ValidateYearMonth("2024-00"))
	assert.False(t, ValidateYearMonth("2024-1"))
	assert.False(t, ValidateYearMonth("202401"))
}
