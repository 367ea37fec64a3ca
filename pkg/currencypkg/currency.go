// Package currencypkg provides common currency related functionality for apps.
//
// It is the single source of rate constants: balances and charges are stored
// in RUB, other currencies exist only at the catalog and display edges.
package currencypkg

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Constants for all supported currencies.
const (
	RUB = "RUB"
	USD = "USD"
	EUR = "EUR"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	RUB,
	USD,
	EUR,
}

// ErrUnsupported indicates a currency outside of SupportedCurrencies.
var ErrUnsupported = errors.New("unsupported currency")

// Static exchange rates, RUB per one unit of currency.
var rates = map[string]decimal.Decimal{
	RUB: decimal.NewFromInt(1),
	USD: decimal.RequireFromString("72.56"),
	EUR: decimal.RequireFromString("85.46"),
}

// IsSupportedCurrency returns true if the currency is supported.
func IsSupportedCurrency(currency string) bool {
	_, ok := rates[currency]
	return ok
}

// ValidCurrency validates whether the currency is supported.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCurrency(c)
	}

	return false
}

// ToRUB converts the amount denominated in the given currency to RUB,
// rounded half to even at two decimal places.
func ToRUB(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, ok := rates[currency]
	if !ok {
		return decimal.Decimal{}, ErrUnsupported
	}

	return amount.Mul(rate).RoundBank(2), nil
}

// FromRUB converts the RUB amount to the given display currency,
// rounded half to even at two decimal places. It never mutates stored
// balances; callers apply it on the read path only.
func FromRUB(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, ok := rates[currency]
	if !ok {
		return decimal.Decimal{}, ErrUnsupported
	}

	return amount.Div(rate).RoundBank(2), nil
}
