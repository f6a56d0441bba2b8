// Package finance holds the arithmetic over a user's records: balances,
// monthly spend against budgets, debt reconciliation, subscription
// normalization and wishlist maturity. Nothing here touches storage.
package finance

import "github.com/shopspring/decimal"

// total adds amounts in decimal to keep sums of cents exact.
func total(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}

	return sum.InexactFloat64()
}

func ratio(part, whole float64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole))
}
