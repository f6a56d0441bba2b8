package model

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/qx/mybudget/api/internal/finance"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDB keeps every collection behind one lock, so multi-collection
// writes such as buying a wish are atomic. Reads return copies.
type memoryDB struct {
	mu            sync.RWMutex
	users         map[primitive.ObjectID]User
	transactions  map[primitive.ObjectID]Transaction
	budgets       map[primitive.ObjectID]Budget
	debts         map[primitive.ObjectID]Debt
	wishes        map[primitive.ObjectID]Wish
	subscriptions map[primitive.ObjectID]Subscription
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:         make(map[primitive.ObjectID]User),
		transactions:  make(map[primitive.ObjectID]Transaction),
		budgets:       make(map[primitive.ObjectID]Budget),
		debts:         make(map[primitive.ObjectID]Debt),
		wishes:        make(map[primitive.ObjectID]Wish),
		subscriptions: make(map[primitive.ObjectID]Subscription),
	}
}

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

// collect copies the values of m that keep accepts, ordered by less.
func collect[T any](m map[primitive.ObjectID]T, keep func(*T) bool, less func(a, b *T) bool) []*T {
	out := make([]*T, 0)
	for _, v := range m {
		v := v
		if keep(&v) {
			out = append(out, &v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// removeWhere deletes the values of m that match and reports how many.
func removeWhere[T any](m map[primitive.ObjectID]T, match func(*T) bool) int64 {
	var n int64
	for id, v := range m {
		v := v
		if match(&v) {
			delete(m, id)
			n++
		}
	}

	return n
}

type memoryUserModel struct{ db *memoryDB }

func (m memoryUserModel) Insert(_ context.Context, data *User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if m.db.userConflict(data) {
		return ErrDuplicate
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	m.db.users[data.ID] = *data

	return nil
}

// userConflict reports whether another user holds data's email, phone or
// Telegram chat.
func (db *memoryDB) userConflict(data *User) bool {
	for id, u := range db.users {
		if id == data.ID {
			continue
		}
		if u.Email == data.Email ||
			(data.Phone != "" && u.Phone == data.Phone) ||
			(data.TelegramChatID != 0 && u.TelegramChatID == data.TelegramChatID) {
			return true
		}
	}

	return false
}

func (m memoryUserModel) FindOne(_ context.Context, id string) (*User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	u, ok := m.db.users[oid]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (m memoryUserModel) FindByEmail(_ context.Context, email string) (*User, error) {
	return m.find(func(u *User) bool { return u.Email == email })
}

func (m memoryUserModel) FindByPhone(_ context.Context, phone string) (*User, error) {
	if phone == "" {
		return nil, ErrNotFound
	}
	return m.find(func(u *User) bool { return u.Phone == phone })
}

func (m memoryUserModel) FindByTelegramChat(_ context.Context, chatID int64) (*User, error) {
	if chatID == 0 {
		return nil, ErrNotFound
	}
	return m.find(func(u *User) bool { return u.TelegramChatID == chatID })
}

func (m memoryUserModel) find(match func(*User) bool) (*User, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	for _, u := range m.db.users {
		u := u
		if match(&u) {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (m memoryUserModel) Update(_ context.Context, data *User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.users[data.ID]; !ok {
		return ErrNotFound
	}
	if m.db.userConflict(data) {
		return ErrDuplicate
	}
	m.db.users[data.ID] = *data

	return nil
}

func (m memoryUserModel) Delete(_ context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[oid]; !ok {
		return ErrNotFound
	}
	delete(m.db.users, oid)

	return nil
}

type memoryTransactionModel struct{ db *memoryDB }

func (m memoryTransactionModel) Insert(_ context.Context, data *Transaction) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	prepareTransaction(data, time.Now())
	m.db.transactions[data.ID] = *data

	return nil
}

func (m memoryTransactionModel) FindOne(_ context.Context, owner primitive.ObjectID, id string) (*Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	t, ok := m.db.transactions[oid]
	if !ok || t.User != owner {
		return nil, ErrNotFound
	}

	return &t, nil
}

func (m memoryTransactionModel) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]*Transaction, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.transactions,
		func(t *Transaction) bool { return t.User == owner },
		func(a, b *Transaction) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}), nil
}

func (m memoryTransactionModel) Update(_ context.Context, data *Transaction) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	t, ok := m.db.transactions[data.ID]
	if !ok || t.User != data.User {
		return ErrNotFound
	}
	t.Amount = data.Amount
	t.Category = data.Category
	t.Note = data.Note
	t.Date = data.Date
	m.db.transactions[t.ID] = t

	return nil
}

func (m memoryTransactionModel) Delete(_ context.Context, owner primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if removeWhere(m.db.transactions, func(t *Transaction) bool { return t.ID == oid && t.User == owner }) == 0 {
		return ErrNotFound
	}

	return nil
}

func (m memoryTransactionModel) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return removeWhere(m.db.transactions, func(t *Transaction) bool { return t.User == owner }), nil
}

type memoryBudgetModel struct{ db *memoryDB }

func (m memoryBudgetModel) Upsert(_ context.Context, owner primitive.ObjectID, category string, limit float64,
	at time.Time) (*Budget, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for id, b := range m.db.budgets {
		if b.User == owner && b.Category == category {
			b.Limit = limit
			b.UpdateAt = at
			m.db.budgets[id] = b
			return &b, nil
		}
	}

	b := Budget{
		ID:        primitive.NewObjectID(),
		User:      owner,
		Category:  category,
		Limit:     limit,
		CreatedAt: at,
		UpdateAt:  at,
	}
	m.db.budgets[b.ID] = b

	return &b, nil
}

func (m memoryBudgetModel) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]*Budget, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.budgets,
		func(b *Budget) bool { return b.User == owner },
		func(a, b *Budget) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (m memoryBudgetModel) Delete(_ context.Context, owner primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if removeWhere(m.db.budgets, func(b *Budget) bool { return b.ID == oid && b.User == owner }) == 0 {
		return ErrNotFound
	}

	return nil
}

func (m memoryBudgetModel) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return removeWhere(m.db.budgets, func(b *Budget) bool { return b.User == owner }), nil
}

type memoryDebtModel struct{ db *memoryDB }

func debtNewestFirst(a, b *Debt) bool { return a.CreatedAt.After(b.CreatedAt) }

func (m memoryDebtModel) Insert(_ context.Context, data *Debt) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	m.db.debts[data.ID] = *data

	return nil
}

func (m memoryDebtModel) FindByCreditor(_ context.Context, creditor primitive.ObjectID) ([]*Debt, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.debts, func(d *Debt) bool { return d.Creditor == creditor }, debtNewestFirst), nil
}

func (m memoryDebtModel) FindLentToPhone(_ context.Context, phone string, exclude primitive.ObjectID) ([]*Debt, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.debts, func(d *Debt) bool {
		return !d.IsMyDebt && d.DebtorPhone == phone && d.Creditor != exclude
	}, debtNewestFirst), nil
}

func (m memoryDebtModel) SetPaid(_ context.Context, creditor primitive.ObjectID, id string, paidAt *time.Time) (*Debt, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	d, ok := m.db.debts[oid]
	if !ok || d.Creditor != creditor {
		return nil, ErrNotFound
	}
	d.IsPaid = paidAt != nil
	d.PaidAt = paidAt
	m.db.debts[oid] = d

	return &d, nil
}

func (m memoryDebtModel) Delete(_ context.Context, creditor primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if removeWhere(m.db.debts, func(d *Debt) bool { return d.ID == oid && d.Creditor == creditor }) == 0 {
		return ErrNotFound
	}

	return nil
}

func (m memoryDebtModel) DeleteByCreditor(_ context.Context, creditor primitive.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return removeWhere(m.db.debts, func(d *Debt) bool { return d.Creditor == creditor }), nil
}

type memoryWishModel struct{ db *memoryDB }

func (m memoryWishModel) Insert(_ context.Context, data *Wish) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	data.ID = newID(data.ID)
	if data.AddedAt.IsZero() {
		data.AddedAt = time.Now()
	}
	if data.Status == "" {
		data.Status = finance.WishActive
	}
	m.db.wishes[data.ID] = *data

	return nil
}

func (m memoryWishModel) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]*Wish, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.wishes,
		func(w *Wish) bool { return w.User == owner },
		func(a, b *Wish) bool { return a.AddedAt.After(b.AddedAt) }), nil
}

func (m memoryWishModel) Buy(_ context.Context, owner primitive.ObjectID, id string, at time.Time,
	purchase PurchaseFunc) (*Wish, *Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, nil, err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	w, err := m.db.activeWish(owner, oid, finance.WishBought)
	if err != nil {
		return nil, nil, err
	}

	w.Status = finance.WishBought
	w.BoughtAt = &at
	tx := purchase(&w)
	prepareTransaction(tx, at)
	m.db.wishes[oid] = w
	m.db.transactions[tx.ID] = *tx

	return &w, tx, nil
}

func (m memoryWishModel) Archive(_ context.Context, owner primitive.ObjectID, id string) (*Wish, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	w, err := m.db.activeWish(owner, oid, finance.WishArchived)
	if err != nil {
		return nil, err
	}

	w.Status = finance.WishArchived
	m.db.wishes[oid] = w

	return &w, nil
}

// activeWish returns the owner's wish when it may move to the target status.
func (db *memoryDB) activeWish(owner, oid primitive.ObjectID, to finance.WishStatus) (Wish, error) {
	w, ok := db.wishes[oid]
	if !ok || w.User != owner {
		return Wish{}, ErrNotFound
	}
	if !finance.CanTransition(w.Status, to) {
		return Wish{}, ErrWishClosed
	}

	return w, nil
}

func (m memoryWishModel) Delete(_ context.Context, owner primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if removeWhere(m.db.wishes, func(w *Wish) bool { return w.ID == oid && w.User == owner }) == 0 {
		return ErrNotFound
	}

	return nil
}

func (m memoryWishModel) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return removeWhere(m.db.wishes, func(w *Wish) bool { return w.User == owner }), nil
}

type memorySubscriptionModel struct{ db *memoryDB }

func (m memorySubscriptionModel) Insert(_ context.Context, data *Subscription) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	m.db.subscriptions[data.ID] = *data

	return nil
}

func (m memorySubscriptionModel) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]*Subscription, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return collect(m.db.subscriptions,
		func(s *Subscription) bool { return s.User == owner },
		func(a, b *Subscription) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m memorySubscriptionModel) Toggle(_ context.Context, owner primitive.ObjectID, id string) (*Subscription, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	s, ok := m.db.subscriptions[oid]
	if !ok || s.User != owner {
		return nil, ErrNotFound
	}
	s.IsActive = !s.IsActive
	m.db.subscriptions[oid] = s

	return &s, nil
}

func (m memorySubscriptionModel) Delete(_ context.Context, owner primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if removeWhere(m.db.subscriptions, func(s *Subscription) bool { return s.ID == oid && s.User == owner }) == 0 {
		return ErrNotFound
	}

	return nil
}

func (m memorySubscriptionModel) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return removeWhere(m.db.subscriptions, func(s *Subscription) bool { return s.User == owner }), nil
}
