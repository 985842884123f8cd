package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "food", []string{"food"}},
		{"trims and drops empties", " a , b ,, c ", []string{"a", "b", "c"}},
		{"order preserved", "z,a, m", []string{"z", "a", "m"}},
		{"duplicates kept", "x,x", []string{"x", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.raw))
		})
	}
}

func TestJoinTags_RoundTrip(t *testing.T) {
	tags := []string{"trip", "shared", "2024"}
	assert.Equal(t, "trip,shared,2024", JoinTags(tags))
	assert.Equal(t, tags, SplitTags(JoinTags(tags)))
}
