package finance

import "time"

type WishStatus string

const (
	WishActive   WishStatus = "active"
	WishBought   WishStatus = "bought"
	WishArchived WishStatus = "archived"
)

// Terminal reports whether no transition leaves the status.
func (s WishStatus) Terminal() bool {
	return s == WishBought || s == WishArchived
}

// CanTransition reports whether a wish may move from one status to another.
// Only active wishes move, and only to a terminal status.
func CanTransition(from, to WishStatus) bool {
	return from == WishActive && to.Terminal()
}

// DefaultMaturityDays is the cooling-off window before a wish is ready.
const DefaultMaturityDays = 30

type Maturity struct {
	DaysWaiting   int  `json:"daysWaiting"`
	DaysRemaining int  `json:"daysRemaining"`
	Ready         bool `json:"isReady"`
}

// MaturityOf computes how long a wish has waited. Readiness is advisory and
// never blocks buying.
func MaturityOf(addedAt, now time.Time, windowDays int) Maturity {
	days := 0
	if now.After(addedAt) {
		days = int(now.Sub(addedAt) / (24 * time.Hour))
	}
	remaining := windowDays - days
	if remaining < 0 {
		remaining = 0
	}

	return Maturity{
		DaysWaiting:   days,
		DaysRemaining: remaining,
		Ready:         days >= windowDays,
	}
}

// PurchaseAmount is the signed ledger amount recorded when a wish is bought.
func PurchaseAmount(price float64) float64 {
	return -price
}

// Wishful is implemented by stored wishes.
type Wishful interface {
	State() WishStatus
	Added() time.Time
	Cost() float64
}

type WishTotals struct {
	Waiting int     `json:"waiting"`
	Ready   int     `json:"ready"`
	Saved   float64 `json:"saved"`
}

// SummarizeWishes counts active wishes and how many of them are ready, and
// sums the prices of archived wishes as money saved.
func SummarizeWishes[W Wishful](wishes []W, now time.Time, windowDays int) WishTotals {
	var out WishTotals
	var saved []float64
	for _, w := range wishes {
		switch w.State() {
		case WishActive:
			out.Waiting++
			if MaturityOf(w.Added(), now, windowDays).Ready {
				out.Ready++
			}
		case WishArchived:
			saved = append(saved, w.Cost())
		}
	}
	out.Saved = total(saved...)

	return out
}
