package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type wish struct {
	status WishStatus
	added  time.Time
	price  float64
}

func (w wish) State() WishStatus { return w.status }
func (w wish) Added() time.Time  { return w.added }
func (w wish) Cost() float64     { return w.price }

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(WishActive, WishBought))
	assert.True(t, CanTransition(WishActive, WishArchived))
	assert.False(t, CanTransition(WishActive, WishActive))
	assert.False(t, CanTransition(WishBought, WishArchived))
	assert.False(t, CanTransition(WishArchived, WishBought))
	assert.False(t, CanTransition(WishBought, WishActive))
}

func TestMaturityOf(t *testing.T) {
	added := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	m := MaturityOf(added, added.Add(29*24*time.Hour+23*time.Hour), DefaultMaturityDays)
	assert.Equal(t, Maturity{DaysWaiting: 29, DaysRemaining: 1, Ready: false}, m)

	m = MaturityOf(added, added.Add(30*24*time.Hour), DefaultMaturityDays)
	assert.Equal(t, Maturity{DaysWaiting: 30, DaysRemaining: 0, Ready: true}, m)

	m = MaturityOf(added, added.Add(-time.Hour), DefaultMaturityDays)
	assert.Equal(t, 0, m.DaysWaiting)
	assert.False(t, m.Ready)
}

func TestSummarizeWishes(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	wishes := []wish{
		{status: WishActive, added: now.AddDate(0, 0, -40), price: 10},
		{status: WishActive, added: now.AddDate(0, 0, -3), price: 20},
		{status: WishArchived, added: now.AddDate(0, 0, -90), price: 99.9},
		{status: WishArchived, added: now.AddDate(0, 0, -60), price: 0.1},
		{status: WishBought, added: now.AddDate(0, 0, -60), price: 500},
	}

	totals := SummarizeWishes(wishes, now, DefaultMaturityDays)
	assert.Equal(t, WishTotals{Waiting: 2, Ready: 1, Saved: 100}, totals)
}

func TestPurchaseAmount(t *testing.T) {
	assert.Equal(t, -45.5, PurchaseAmount(45.5))
}
