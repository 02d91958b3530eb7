package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{12345, "INR", "INR 123.45"},
		{100, "USD", "USD 1.00"},
		{5, "EUR", "EUR 0.05"},
		{0, "INR", "INR 0.00"},
		{-2550, "INR", "INR -25.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
	}
}

func TestPaginationOffset(t *testing.T) {
	p := PaginationQuery{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())

	first := PaginationQuery{Page: 1, Limit: 50}
	assert.Equal(t, 0, first.Offset())
}
