package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/davidokon/secretshop/internal/domain/error"
)

func TestValidateAndConvertAmount(t *testing.T) {
	t.Run("should convert valid amounts to cents", func(t *testing.T) {
		cases := []struct {
			input    string
			expected int64
		}{
			{"50", 5000},
			{"50.", 5000},
			{"10.1", 1010},
			{"10.15", 1015},
			{"0.05", 5},
			{" 25.00 ", 2500},
		}

		for _, tc := range cases {
			got, err := ValidateAndConvertAmount(tc.input)
			assert.NoError(t, err, "input: %q", tc.input)
			assert.Equal(t, tc.expected, got, "input: %q", tc.input)
		}
	})

	t.Run("should reject empty amount", func(t *testing.T) {
		_, err := ValidateAndConvertAmount("   ")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := ValidateAndConvertAmount("-10.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("should reject more than two decimal places", func(t *testing.T) {
		_, err := ValidateAndConvertAmount("10.001")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		for _, input := range []string{"1.2.3", "abc", "10.x"} {
			_, err := ValidateAndConvertAmount(input)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "input: %q", input)
		}
	})
}

func TestAmountInCentsToString(t *testing.T) {
	cases := []struct {
		input    int64
		expected string
	}{
		{1015, "10.15"},
		{1000, "10.00"},
		{5, "0.05"},
		{0, "0.00"},
		{-250, "-2.50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, AmountInCentsToString(tc.input), "input: %d", tc.input)
	}
}
