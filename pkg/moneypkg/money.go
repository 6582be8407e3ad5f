// Package moneypkg provides parsing and display formatting for monetary amounts.
//
// All accounts are denominated in MAD; balances travel between layers as
// decimal strings and are only converted for arithmetic and display.
package moneypkg

import "github.com/shopspring/decimal"

// Currency is the single currency all accounts are denominated in.
const Currency = "MAD"

// Parse converts a decimal string into a decimal value.
func Parse(amount string) (decimal.Decimal, error) {
	return decimal.NewFromString(amount)
}

// Display formats an amount with two decimals and the currency code
// for user-facing messages.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + Currency
}

// DisplayString is Display for amounts that are already decimal strings.
// Unparseable input is returned as is; callers validate amounts before
// building messages with them.
func DisplayString(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	return Display(d)
}
