package finance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Severity grades how much of a budget has been used.
type Severity string

const (
	SeverityNominal  Severity = "nominal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	warningPercent  = 80
	criticalPercent = 100
)

// SeverityOf grades a raw, unclamped usage percentage.
func SeverityOf(percent float64) Severity {
	switch {
	case percent >= criticalPercent:
		return SeverityCritical
	case percent >= warningPercent:
		return SeverityWarning
	default:
		return SeverityNominal
	}
}

// Limit is a monthly spending ceiling for one category.
type Limit struct {
	Category string
	Amount   float64
}

type BudgetStatus struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
	// Percentage is clamped to 100 for display.
	Percentage float64 `json:"percentage"`
	// Ratio is spent/limit, never clamped.
	Ratio    float64  `json:"ratio"`
	Exceeded bool     `json:"exceeded"`
	Severity Severity `json:"severity"`
}

// Evaluate grades spending against a single limit.
func Evaluate(l Limit, spent float64) BudgetStatus {
	r := ratio(spent, l.Amount)
	percent := r.Mul(decimal.NewFromInt(100)).InexactFloat64()
	return BudgetStatus{
		Category:   l.Category,
		Limit:      l.Amount,
		Spent:      spent,
		Percentage: math.Min(percent, 100),
		Ratio:      r.InexactFloat64(),
		Exceeded:   spent > l.Amount,
		Severity:   SeverityOf(percent),
	}
}

// BudgetReport evaluates this month's spending for every budgeted category,
// in the order of limits. Categories without a limit are not reported.
func BudgetReport(limits []Limit, flows []Flow, now time.Time) []BudgetStatus {
	spent := MonthlySpend(flows, now)
	report := make([]BudgetStatus, 0, len(limits))
	for _, l := range limits {
		report = append(report, Evaluate(l, spent[l.Category]))
	}

	return report
}
