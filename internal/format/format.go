// Package format renders pricing results for display.
package format

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printcost/internal/pricing"
)

const (
	// DefaultSymbol is the currency prefix used when none is configured.
	DefaultSymbol = "NT$"
	// Placeholder is shown in place of an undefined cost.
	Placeholder = "N/A"
)

// Currency formats amounts with a currency symbol and two decimals.
type Currency struct {
	Symbol string
}

// NewCurrency returns a Currency for symbol, falling back to DefaultSymbol.
func NewCurrency(symbol string) Currency {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Currency{Symbol: symbol}
}

// exactDigits is enough fractional digits that rounding the binary value to
// them never lands on a cent half-way point it was not already on.
const exactDigits = 40

// Amount renders an amount rounded to cents, e.g. "NT$ 193.44". Rounding
// works on the exact binary value, so 1.005 (stored as 1.00499...) renders
// as "1.00" while true half-way values round away from zero.
func (c Currency) Amount(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return c.Symbol + " NaN"
	case math.IsInf(amount, 1):
		return c.Symbol + " Infinity"
	case math.IsInf(amount, -1):
		return c.Symbol + " -Infinity"
	}
	exact := decimal.RequireFromString(strconv.FormatFloat(amount, 'f', exactDigits, 64))
	return c.Symbol + " " + exact.StringFixed(2)
}

// Result renders a pricing result, using Placeholder when it is undefined.
func (c Currency) Result(r pricing.Result) string {
	if !r.Defined {
		return Placeholder
	}
	return c.Amount(r.Totals.Total)
}
