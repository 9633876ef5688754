package handler

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// parseAmount converts a decimal currency string ("30.40") into minor units.
// Anything finer than two decimal places is rejected so the integer ledger
// never loses sub-cent value.
func parseAmount(field, value string) (int64, *FieldError) {
	if value == "" {
		return 0, &FieldError{Field: field, Message: "required"}
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, &FieldError{Field: field, Message: "must be a decimal number"}
	}

	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, &FieldError{Field: field, Message: "at most two decimal places"}
	}
	if !cents.IsPositive() {
		return 0, &FieldError{Field: field, Message: "must be greater than zero"}
	}

	return cents.IntPart(), nil
}

// formatAmount renders minor units as a fixed two-decimal string, keeping
// the sign for balances.
func formatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}
