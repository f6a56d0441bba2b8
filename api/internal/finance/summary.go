package finance

import "time"

// Flow is a signed ledger movement: positive is income, negative is expense.
type Flow struct {
	Amount    float64
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

// EffectiveAt is the date the flow counts for. Flows without a date fall
// back to their creation time.
func (f Flow) EffectiveAt() time.Time {
	if f.Date.IsZero() {
		return f.CreatedAt
	}

	return f.Date
}

func (f Flow) IsIncome() bool  { return f.Amount > 0 }
func (f Flow) IsExpense() bool { return f.Amount < 0 }

// Kind selects income, expense or both.
type Kind string

const (
	KindAll     Kind = "all"
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Matches reports whether a signed amount belongs to the kind. Zero amounts
// only match KindAll.
func (k Kind) Matches(amount float64) bool {
	switch k {
	case KindIncome:
		return amount > 0
	case KindExpense:
		return amount < 0
	default:
		return true
	}
}

type Summary struct {
	Balance float64 `json:"balance"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summarize reduces flows into balance, total income and total expense.
// Expense is reported as a positive number.
func Summarize(flows []Flow) Summary {
	var incomes, expenses []float64
	for _, f := range flows {
		switch {
		case f.IsIncome():
			incomes = append(incomes, f.Amount)
		case f.IsExpense():
			expenses = append(expenses, -f.Amount)
		}
	}

	income := total(incomes...)
	expense := total(expenses...)
	return Summary{
		Balance: total(income, -expense),
		Income:  income,
		Expense: expense,
	}
}

// MonthStart is midnight of the first day of now's month, in now's location.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// MonthlySpend sums the absolute value of expenses per category whose
// effective date lies in [MonthStart(now), now].
func MonthlySpend(flows []Flow, now time.Time) map[string]float64 {
	start := MonthStart(now)
	perCategory := make(map[string][]float64)
	for _, f := range flows {
		if !f.IsExpense() {
			continue
		}
		at := f.EffectiveAt()
		if at.Before(start) || at.After(now) {
			continue
		}
		perCategory[f.Category] = append(perCategory[f.Category], -f.Amount)
	}

	spent := make(map[string]float64, len(perCategory))
	for cat, amounts := range perCategory {
		spent[cat] = total(amounts...)
	}

	return spent
}
