package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sub struct {
	amount float64
	cycle  Cycle
	active bool
}

func (s sub) Cost() (float64, Cycle) { return s.amount, s.cycle }
func (s sub) Active() bool           { return s.active }

func TestNormalizedAmounts(t *testing.T) {
	for _, tt := range []struct {
		amount float64
		cycle  Cycle
	}{
		{9.99, Monthly},
		{119.88, Yearly},
		{100, Yearly},
		{0.01, Monthly},
		{1234.56, Yearly},
	} {
		monthly := MonthlyAmount(tt.amount, tt.cycle)
		yearly := YearlyAmount(tt.amount, tt.cycle)
		assert.InDelta(t, yearly, monthly*12, 1e-6, "%v %s", tt.amount, tt.cycle)
		if tt.cycle == Monthly {
			assert.Equal(t, tt.amount, monthly)
		} else {
			assert.Equal(t, tt.amount, yearly)
		}
	}
}

func TestSubscriptionTotals(t *testing.T) {
	subs := []sub{
		{amount: 10, cycle: Monthly, active: true},
		{amount: 120, cycle: Yearly, active: true},
		{amount: 50, cycle: Monthly, active: false},
	}

	totals := Totals(subs)
	assert.Equal(t, 20.0, totals.Monthly)
	assert.Equal(t, 240.0, totals.Yearly)
	assert.Equal(t, 2, totals.Count)

	active, paused := Partition(subs)
	assert.Len(t, active, 2)
	assert.Len(t, paused, 1)
}

func TestCycleValid(t *testing.T) {
	assert.True(t, Monthly.Valid())
	assert.True(t, Yearly.Valid())
	assert.False(t, Cycle("weekly").Valid())
}
