package logic

import (
	"net/http"
	"testing"

	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []*model.Debt) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID.Hex())
	}
	return out
}

func TestDebtReconciliationAcrossUsers(t *testing.T) {
	svcCtx, _ := newTestContext()
	alice := signedIn(t, svcCtx, "alice", "+10000000001")
	bob := signedIn(t, svcCtx, "bob", "+10000000002")

	lent, err := NewDebtLogic(alice, svcCtx).Create(&types.DebtReq{Phone: "+1 000-000-0002", Name: "Bob", Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, "+10000000002", lent.Data.DebtorPhone)
	assert.False(t, lent.Data.IsMyDebt)

	owed, err := NewDebtLogic(bob, svcCtx).Create(&types.DebtReq{IsMyDebt: true, CreditorName: "Landlord", Amount: 700})
	require.NoError(t, err)
	assert.Equal(t, finance.SelfPhone, owed.Data.DebtorPhone)

	bobView, err := NewDebtLogic(bob, svcCtx).List()
	require.NoError(t, err)
	assert.Empty(t, bobView.Data.OwedToMe)
	assert.ElementsMatch(t, []string{lent.Data.ID.Hex(), owed.Data.ID.Hex()}, ids(bobView.Data.IOwe))
	assert.Equal(t, finance.DebtTotals{OwedToMePending: 0, IOwePending: 750}, bobView.Totals)

	aliceView, err := NewDebtLogic(alice, svcCtx).List()
	require.NoError(t, err)
	assert.Equal(t, []string{lent.Data.ID.Hex()}, ids(aliceView.Data.OwedToMe))
	assert.Empty(t, aliceView.Data.IOwe)
	assert.Equal(t, 50.0, aliceView.Totals.OwedToMePending)
}

func TestDebtValidation(t *testing.T) {
	svcCtx, _ := newTestContext()
	alice := signedIn(t, svcCtx, "alice", "+10000000001")

	bad := []types.DebtReq{
		{Phone: "+10000000002", Amount: 0},
		{Phone: "+10000000002", Amount: -5},
		{Amount: 5},
		{Phone: "abc", Amount: 5},
		{Phone: "+1 000 000 0001", Amount: 5},
		{IsMyDebt: true, Amount: 5},
	}
	for _, req := range bad {
		req := req
		_, err := NewDebtLogic(alice, svcCtx).Create(&req)
		assertCode(t, err, http.StatusBadRequest)
	}
}

func TestDebtPayRoundTrip(t *testing.T) {
	svcCtx, _ := newTestContext()
	alice := signedIn(t, svcCtx, "alice", "+10000000001")
	bob := signedIn(t, svcCtx, "bob", "+10000000002")

	lent, err := NewDebtLogic(alice, svcCtx).Create(&types.DebtReq{Phone: "+10000000002", Amount: 50})
	require.NoError(t, err)
	id := &types.IdPath{Id: lent.Data.ID.Hex()}

	_, err = NewDebtLogic(bob, svcCtx).Pay(id)
	assertCode(t, err, http.StatusNotFound)
	_, err = NewDebtLogic(bob, svcCtx).Delete(id)
	assertCode(t, err, http.StatusNotFound)

	paid, err := NewDebtLogic(alice, svcCtx).Pay(id)
	require.NoError(t, err)
	assert.True(t, paid.Data.IsPaid)
	require.NotNil(t, paid.Data.PaidAt)
	assert.Equal(t, testNow, *paid.Data.PaidAt)

	view, err := NewDebtLogic(bob, svcCtx).List()
	require.NoError(t, err)
	assert.Zero(t, view.Totals.IOwePending)

	unpaid, err := NewDebtLogic(alice, svcCtx).Unpay(id)
	require.NoError(t, err)
	assert.False(t, unpaid.Data.IsPaid)
	assert.Nil(t, unpaid.Data.PaidAt)

	_, err = NewDebtLogic(alice, svcCtx).Delete(id)
	require.NoError(t, err)
	view, err = NewDebtLogic(bob, svcCtx).List()
	require.NoError(t, err)
	assert.Empty(t, view.Data.IOwe)
}

func TestDebtNotifiesLinkedDebtor(t *testing.T) {
	svcCtx, notifier := newTestContext()
	alice := signedIn(t, svcCtx, "alice", "+10000000001")
	bob := signedIn(t, svcCtx, "bob", "+10000000002")

	debtor := *userOf(bob)
	debtor.TelegramChatID = 4242
	require.NoError(t, svcCtx.Models.Users.Update(bob, &debtor))

	lent, err := NewDebtLogic(alice, svcCtx).Create(&types.DebtReq{Phone: "+10000000002", Amount: 50, Description: "pizza"})
	require.NoError(t, err)
	_, err = NewDebtLogic(alice, svcCtx).Pay(&types.IdPath{Id: lent.Data.ID.Hex()})
	require.NoError(t, err)
	_, err = NewDebtLogic(alice, svcCtx).Create(&types.DebtReq{Phone: "+10000000009", Amount: 5})
	require.NoError(t, err)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, int64(4242), notifier.sent[0].chatID)
	assert.Contains(t, notifier.sent[0].text, "pizza")
	assert.Contains(t, notifier.sent[1].text, "paid")
}
