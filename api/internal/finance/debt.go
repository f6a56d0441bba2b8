package finance

import (
	"regexp"
	"strings"
)

// SelfPhone is the counterparty phone stored on records the owner created
// about money they owe. It never matches a real phone.
const SelfPhone = "self"

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// NormalizePhone strips whitespace and hyphens so that phones typed in
// different formats compare equal.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
			return -1
		}
		return r
	}, phone)
}

// ValidPhone reports whether an already normalized phone is acceptable.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// SamePhone compares two phones after normalization. Empty phones and the
// self sentinel never match.
func SamePhone(a, b string) bool {
	a, b = NormalizePhone(a), NormalizePhone(b)
	if a == "" || b == "" || a == SelfPhone || b == SelfPhone {
		return false
	}

	return a == b
}

// Debt is the view shared by both kinds of debt record.
type Debt interface {
	// Owner is the user who created the record and alone may change it.
	Owner() string
	Amount() float64
	IsPaid() bool
	CounterpartyDisplayName() string
}

// LentRecord is money the owner lent to a counterparty known by phone.
type LentRecord struct {
	CreditorUser      string
	CounterpartyPhone string
	CounterpartyName  string
	Value             float64
	Paid              bool
}

func (r LentRecord) Owner() string   { return r.CreditorUser }
func (r LentRecord) Amount() float64 { return r.Value }
func (r LentRecord) IsPaid() bool    { return r.Paid }

func (r LentRecord) CounterpartyDisplayName() string {
	if r.CounterpartyName != "" {
		return r.CounterpartyName
	}

	return r.CounterpartyPhone
}

// OwedRecord is money the owner owes to someone who may not be a user.
type OwedRecord struct {
	OwingUser        string
	CounterpartyName string
	Value            float64
	Paid             bool
}

func (r OwedRecord) Owner() string                   { return r.OwingUser }
func (r OwedRecord) Amount() float64                 { return r.Value }
func (r OwedRecord) IsPaid() bool                    { return r.Paid }
func (r OwedRecord) CounterpartyDisplayName() string { return r.CounterpartyName }

// Variant is implemented by stored debt documents.
type Variant interface {
	Variant() Debt
}

// Party identifies the user a debt book is built for.
type Party struct {
	UserID string
	Phone  string
}

type Book[R Variant] struct {
	OwedToMe []R
	IOwe     []R
}

// Reconcile splits debt records into the two views of one user.
//
// own are the records the user created. incoming are lent records created by
// other users, found by looking up the user's phone; they are passed in
// explicitly because the counterparty link is a phone, not a user reference.
// A record lands in at most one list.
func Reconcile[R Variant](self Party, own, incoming []R) Book[R] {
	book := Book[R]{OwedToMe: []R{}, IOwe: []R{}}
	for _, r := range own {
		switch v := r.Variant().(type) {
		case LentRecord:
			if v.CreditorUser == self.UserID {
				book.OwedToMe = append(book.OwedToMe, r)
			}
		case OwedRecord:
			if v.OwingUser == self.UserID {
				book.IOwe = append(book.IOwe, r)
			}
		}
	}
	for _, r := range incoming {
		v, ok := r.Variant().(LentRecord)
		if !ok || v.CreditorUser == self.UserID {
			continue
		}
		if SamePhone(v.CounterpartyPhone, self.Phone) {
			book.IOwe = append(book.IOwe, r)
		}
	}

	return book
}

type DebtTotals struct {
	OwedToMePending float64 `json:"owedToMePending"`
	IOwePending     float64 `json:"iOwePending"`
}

// Totals sums the unpaid amounts of both views.
func (b Book[R]) Totals() DebtTotals {
	return DebtTotals{
		OwedToMePending: pending(b.OwedToMe),
		IOwePending:     pending(b.IOwe),
	}
}

func pending[R Variant](records []R) float64 {
	var amounts []float64
	for _, r := range records {
		d := r.Variant()
		if !d.IsPaid() {
			amounts = append(amounts, d.Amount())
		}
	}

	return total(amounts...)
}
