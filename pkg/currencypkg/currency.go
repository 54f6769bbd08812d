// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Constants for all supported currencies.
const (
	USD = "USD"
	EUR = "EUR"
	UGX = "UGX"
	XOF = "XOF"
)

// Errors returned by ToMinor.
var (
	ErrFractionalMinorUnits = errors.New("amount exceeds currency scale")
	ErrAmountOutOfRange     = errors.New("amount out of range")
)

// scales maps every supported currency to its ISO 4217 minor unit exponent.
var scales = map[string]int32{
	USD: 2,
	EUR: 2,
	UGX: 0,
	XOF: 0,
}

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	USD,
	EUR,
	UGX,
	XOF,
}

// IsSupportedCurrency returns true if the currncy is supported.
func IsSupportedCurrency(currency string) bool {
	_, ok := scales[currency]
	return ok
}

// Scale returns the asset scale of the currency.
func Scale(currency string) int32 {
	return scales[currency]
}

// ToMinor converts a protocol decimal amount into integer minor units of the given scale.
func ToMinor(amount string, scale int32) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, err
	}

	shifted := d.Shift(scale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrFractionalMinorUnits
	}

	if !shifted.BigInt().IsInt64() {
		return 0, ErrAmountOutOfRange
	}

	return shifted.IntPart(), nil
}

// ToMajor formats integer minor units as a protocol decimal amount.
func ToMajor(minor int64, scale int32) string {
	return decimal.New(minor, -scale).String()
}
