package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estate/shared/currency"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "zero", amount: 0, expected: "0"},
		{name: "below one thousand", amount: 950, expected: "950"},
		{name: "thousands", amount: 25000, expected: "25,000"},
		{name: "lakhs", amount: 350000, expected: "3,50,000"},
		{name: "crores", amount: 12345678, expected: "1,23,45,678"},
		{name: "fraction rounds", amount: 999.6, expected: "1,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, currency.Group(tt.amount))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹3,50,000", currency.Format(350000))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "Rs. 50,000", currency.Plain(50000))
}
