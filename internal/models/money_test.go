package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency Currency
		want     string
	}{
		{"krw no decimals", 50000, CurrencyKRW, "₩50,000"},
		{"krw rounds", 1234.6, CurrencyKRW, "₩1,235"},
		{"krw millions", 12345678, CurrencyKRW, "₩12,345,678"},
		{"krw small", 999, CurrencyKRW, "₩999"},
		{"usd two decimals", 1234.5, CurrencyUSD, "$1,234.50"},
		{"usd no grouping needed", 12.5, CurrencyUSD, "$12.50"},
		{"aud prefix", 99.99, CurrencyAUD, "A$99.99"},
		{"negative keeps sign in front", -12.5, CurrencyUSD, "-$12.50"},
		{"negative krw", -50000, CurrencyKRW, "-₩50,000"},
		{"zero", 0, CurrencyUSD, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}
