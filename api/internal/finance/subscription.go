package finance

import "github.com/shopspring/decimal"

// Cycle is the period a subscription amount is denominated in.
type Cycle string

const (
	Monthly Cycle = "monthly"
	Yearly  Cycle = "yearly"
)

func (c Cycle) Valid() bool {
	return c == Monthly || c == Yearly
}

var twelve = decimal.NewFromInt(12)

// MonthlyAmount is the per-month cost of amount billed every cycle.
func MonthlyAmount(amount float64, cycle Cycle) float64 {
	if cycle == Yearly {
		return decimal.NewFromFloat(amount).Div(twelve).InexactFloat64()
	}

	return amount
}

// YearlyAmount is the per-year cost of amount billed every cycle.
func YearlyAmount(amount float64, cycle Cycle) float64 {
	if cycle == Yearly {
		return amount
	}

	return decimal.NewFromFloat(amount).Mul(twelve).InexactFloat64()
}

// Recurring is implemented by stored subscriptions.
type Recurring interface {
	Cost() (float64, Cycle)
	Active() bool
}

type SubscriptionTotals struct {
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
	Count   int     `json:"count"`
}

// Partition splits subscriptions into active and paused, keeping order.
func Partition[R Recurring](subs []R) (active, paused []R) {
	active, paused = []R{}, []R{}
	for _, s := range subs {
		if s.Active() {
			active = append(active, s)
		} else {
			paused = append(paused, s)
		}
	}

	return active, paused
}

// Totals projects the cost of active subscriptions only. Paused ones
// contribute nothing.
func Totals[R Recurring](subs []R) SubscriptionTotals {
	var monthly, yearly []float64
	for _, s := range subs {
		if !s.Active() {
			continue
		}
		amount, cycle := s.Cost()
		monthly = append(monthly, MonthlyAmount(amount, cycle))
		yearly = append(yearly, YearlyAmount(amount, cycle))
	}

	return SubscriptionTotals{
		Monthly: total(monthly...),
		Yearly:  total(yearly...),
		Count:   len(monthly),
	}
}
