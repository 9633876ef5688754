package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      int64
		wantField string
	}{
		{name: "whole units", value: "30", want: 3000},
		{name: "two decimals", value: "30.40", want: 3040},
		{name: "one decimal", value: "0.5", want: 50},
		{name: "single cent", value: "0.01", want: 1},
		{name: "empty", value: "", wantField: "amount"},
		{name: "not a number", value: "abc", wantField: "amount"},
		{name: "three decimals", value: "1.005", wantField: "amount"},
		{name: "zero", value: "0", wantField: "amount"},
		{name: "negative", value: "-3.50", wantField: "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fieldErr := parseAmount("amount", tt.value)
			if tt.wantField != "" {
				require.NotNil(t, fieldErr)
				assert.Equal(t, tt.wantField, fieldErr.Field)
				return
			}
			require.Nil(t, fieldErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "30.40", formatAmount(3040))
	assert.Equal(t, "0.01", formatAmount(1))
	assert.Equal(t, "-3.00", formatAmount(-300))
	assert.Equal(t, "0.00", formatAmount(0))
}
