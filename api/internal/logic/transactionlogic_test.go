package logic

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "")

	resp, err := NewTransactionLogic(ctx, svcCtx).Create(&types.TransactionReq{
		Amount: -12.5, Category: "food", Note: " lunch ",
	})
	require.NoError(t, err)
	assert.Equal(t, "lunch", resp.Data.Note)
	assert.Equal(t, testNow, resp.Data.Date)
	assert.Equal(t, userOf(ctx).ID, resp.Data.User)

	resp, err = NewTransactionLogic(ctx, svcCtx).Create(&types.TransactionReq{
		Amount: 1000, Category: "salary", Date: "2026-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), resp.Data.Date)

	bad := []types.TransactionReq{
		{Amount: 0, Category: "food"},
		{Amount: -1, Category: " "},
		{Amount: -1, Category: "food", Note: strings.Repeat("x", 201)},
		{Amount: -1, Category: "food", Date: "yesterday"},
	}
	for _, req := range bad {
		req := req
		_, err := NewTransactionLogic(ctx, svcCtx).Create(&req)
		assertCode(t, err, http.StatusBadRequest)
	}
}

func seedTransactions(t *testing.T, l *TransactionLogic) {
	t.Helper()
	for _, req := range []types.TransactionReq{
		{Amount: 1000, Category: "salary", Date: "2026-10-01"},
		{Amount: -50, Category: "food", Note: "groceries", Date: "2026-10-02"},
		{Amount: -30, Category: "transport", Note: "Taxi home", Date: "2026-10-03"},
	} {
		req := req
		_, err := l.Create(&req)
		require.NoError(t, err)
	}
}

func TestListTransactions(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "")
	l := NewTransactionLogic(ctx, svcCtx)
	seedTransactions(t, l)

	all, err := l.List(&types.TransactionListReq{Type: "all"})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	assert.Equal(t, "transport", all.Data[0].Category)
	assert.Equal(t, finance.Summary{Balance: 920, Income: 1000, Expense: 80}, all.Totals)

	expenses, err := l.List(&types.TransactionListReq{Type: "expense"})
	require.NoError(t, err)
	assert.Equal(t, 2, expenses.Count)
	assert.Equal(t, finance.Summary{Balance: -80, Income: 0, Expense: 80}, expenses.Totals)

	byName, err := l.List(&types.TransactionListReq{Type: "all", Search: "FOOD"})
	require.NoError(t, err)
	require.Equal(t, 1, byName.Count)
	assert.Equal(t, "groceries", byName.Data[0].Note)

	byNote, err := l.List(&types.TransactionListReq{Type: "all", Search: "taxi"})
	require.NoError(t, err)
	assert.Equal(t, 1, byNote.Count)

	other := signedIn(t, svcCtx, "bob", "")
	none, err := NewTransactionLogic(other, svcCtx).List(&types.TransactionListReq{Type: "all"})
	require.NoError(t, err)
	assert.Empty(t, none.Data)
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "")
	other := signedIn(t, svcCtx, "bob", "")

	created, err := NewTransactionLogic(ctx, svcCtx).Create(&types.TransactionReq{Amount: -10, Category: "food"})
	require.NoError(t, err)
	id := created.Data.ID.Hex()

	updated, err := NewTransactionLogic(ctx, svcCtx).Update(&types.UpdateTransactionReq{
		Id:             id,
		TransactionReq: types.TransactionReq{Amount: -15, Category: "home", Note: "lamp"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.Data.ID, updated.Data.ID)
	assert.Equal(t, -15.0, updated.Data.Amount)
	assert.Equal(t, created.Data.Date, updated.Data.Date)

	_, err = NewTransactionLogic(other, svcCtx).Update(&types.UpdateTransactionReq{
		Id:             id,
		TransactionReq: types.TransactionReq{Amount: -1, Category: "food"},
	})
	assertCode(t, err, http.StatusNotFound)
	_, err = NewTransactionLogic(other, svcCtx).Delete(&types.IdPath{Id: id})
	assertCode(t, err, http.StatusNotFound)
	_, err = NewTransactionLogic(ctx, svcCtx).Delete(&types.IdPath{Id: "nope"})
	assertCode(t, err, http.StatusBadRequest)

	_, err = NewTransactionLogic(ctx, svcCtx).Delete(&types.IdPath{Id: id})
	require.NoError(t, err)
	_, err = NewTransactionLogic(ctx, svcCtx).Delete(&types.IdPath{Id: id})
	assertCode(t, err, http.StatusNotFound)
}

func TestResetTransactions(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "")
	l := NewTransactionLogic(ctx, svcCtx)
	seedTransactions(t, l)

	resp, err := l.Reset()
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)

	list, err := l.List(&types.TransactionListReq{Type: "all"})
	require.NoError(t, err)
	assert.Zero(t, list.Count)
}

func TestExportTransactions(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "")
	l := NewTransactionLogic(ctx, svcCtx)
	seedTransactions(t, l)

	out, err := l.Export(&types.TransactionListReq{Type: "expense"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, []string{
		"Date,Category,Description,Type,Amount",
		"2026-10-03,Transport,Taxi home,expense,30.00",
		"2026-10-02,Food,groceries,expense,50.00",
	}, lines)
}
