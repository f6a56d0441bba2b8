package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/notify"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/zeromicro/go-zero/core/logx"
)

// BotLogic answers the commands sent to the Telegram bot.
type BotLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBotLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BotLogic {
	return &BotLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Reply returns the answer to command sent from chatID, or an empty string
// for commands the bot does not know.
func (l *BotLogic) Reply(chatID int64, command string) (string, error) {
	switch command {
	case "start", "help":
		return notify.Welcome(chatID), nil
	case "summary":
		return l.summary(chatID)
	default:
		return "", nil
	}
}

func (l *BotLogic) summary(chatID int64) (string, error) {
	user, err := l.svcCtx.Models.Users.FindByTelegramChat(l.ctx, chatID)
	if errors.Is(err, model.ErrNotFound) {
		return notify.NotLinked(chatID), nil
	}
	if err != nil {
		return "", fmt.Errorf("find user by chat: %w", err)
	}

	txs, err := l.svcCtx.Models.Transactions.FindByOwner(l.ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("find transactions: %w", err)
	}
	book, err := NewDebtLogic(l.ctx, l.svcCtx).Book(user)
	if err != nil {
		return "", err
	}
	subs, err := l.svcCtx.Models.Subscriptions.FindByOwner(l.ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("find subscriptions: %w", err)
	}

	return notify.Summary(user.Name,
		finance.Summarize(model.Flows(txs)),
		book.Totals(),
		finance.Totals(subs),
	), nil
}
