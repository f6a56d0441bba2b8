package logic

import (
	"context"
	"testing"

	"github.com/qx/mybudget/api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotReply(t *testing.T) {
	svcCtx, _ := newTestContext()
	ctx := signedIn(t, svcCtx, "alice", "+10000000001")
	bot := NewBotLogic(context.Background(), svcCtx)

	msg, err := bot.Reply(55, "start")
	require.NoError(t, err)
	assert.Contains(t, msg, "<code>55</code>")

	msg, err = bot.Reply(55, "summary")
	require.NoError(t, err)
	assert.Contains(t, msg, "not linked")

	msg, err = bot.Reply(55, "unknown")
	require.NoError(t, err)
	assert.Empty(t, msg)

	_, err = NewAuthLogic(ctx, svcCtx).UpdateProfile(&types.UpdateProfileReq{TelegramChatID: 55})
	require.NoError(t, err)
	_, err = NewTransactionLogic(ctx, svcCtx).Create(&types.TransactionReq{Amount: 100, Category: "salary"})
	require.NoError(t, err)
	_, err = NewDebtLogic(ctx, svcCtx).Create(&types.DebtReq{IsMyDebt: true, CreditorName: "Bank", Amount: 20})
	require.NoError(t, err)

	msg, err = bot.Reply(55, "summary")
	require.NoError(t, err)
	assert.Contains(t, msg, "alice")
	assert.Contains(t, msg, "Balance: <code>100.00</code>")
	assert.Contains(t, msg, "You owe: <code>20.00</code>")
}
