package gateway

import (
	"github.com/shopspring/decimal"
)

// AmountField is the ValidationError field name used for amount errors
const AmountField = "amount"

// CheckAmount rejects negative amounts
func CheckAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &ValidationError{Field: AmountField, Value: amount.String(), Reason: "amount must be >= 0"}
	}
	return nil
}

// Cents converts an amount in currency units to an integer count of cents.
// Amounts with sub-cent precision are rejected rather than rounded.
func Cents(amount decimal.Decimal) (string, error) {
	if err := CheckAmount(amount); err != nil {
		return "", err
	}
	cents := amount.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return "", &ValidationError{Field: AmountField, Value: amount.String(), Reason: "amount has more than 2 decimal places"}
	}
	return cents.Truncate(0).String(), nil
}

// Units renders an amount in currency units with 2 decimal places
func Units(amount decimal.Decimal) (string, error) {
	if err := CheckAmount(amount); err != nil {
		return "", err
	}
	if !amount.Equal(amount.Round(2)) {
		return "", &ValidationError{Field: AmountField, Value: amount.String(), Reason: "amount has more than 2 decimal places"}
	}
	return amount.StringFixed(2), nil
}
