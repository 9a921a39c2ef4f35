package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "37.67", expected: "37.67"},
		{input: "1,234.56", expected: "1234.56"},
		{input: "12,345,678.90", expected: "12345678.9"},
		{input: "-45.10", expected: "-45.1"},
		{input: "$ 898.18", expected: "898.18"},
		{input: "0.00", expected: "0"},
		{input: "", wantErr: true},
		{input: "12.3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1.234,56", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "1,234.56", StandardizeAmount("CAD $1,234.56"))
	assert.Equal(t, "-3.00", StandardizeAmount(" -3.00 "))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "-37.67", FromFloat(-37.67).StringFixed(2))
	assert.Equal(t, "0.30", FromFloat(0.1+0.2).StringFixed(2))
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")
	assert.Equal(t, "1234.50", FormatAmount(amount, ""))
	assert.Equal(t, "$1234.50", FormatAmount(amount, "usd"))
	assert.Equal(t, "€1234.50", FormatAmount(amount, "EUR"))
	assert.Equal(t, "CAD 1234.50", FormatAmount(amount, "cad"))
}

func TestSumAndPredicates(t *testing.T) {
	total := Sum(decimal.RequireFromString("-10.25"), decimal.RequireFromString("4.25"))
	assert.Equal(t, "-6.00", total.StringFixed(2))
	assert.True(t, IsNegative(total))
	assert.False(t, IsZero(total))
	assert.True(t, IsZero(Sum()))
}
