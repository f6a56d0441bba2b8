package handler

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/zeromicro/go-zero/core/logx"
)

// BotCommands is the command menu registered with Telegram on startup.
var BotCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Link this chat to your MyBudget account"},
	{Command: "help", Description: "Show help"},
	{Command: "summary", Description: "Show your balance, debts and subscriptions"},
}

type BotHandler struct {
	svcCtx *svc.ServiceContext
}

func NewBotHandler(svcCtx *svc.ServiceContext) *BotHandler {
	return &BotHandler{
		svcCtx: svcCtx,
	}
}

func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	text, err := logic.NewBotLogic(ctx, h.svcCtx).Reply(chatID, update.Message.Command())
	if err != nil {
		logx.WithContext(ctx).Errorf("bot command %q in chat %d: %v", update.Message.Command(), chatID, err)
		text = "⚠️ Something went wrong, please try again later."
	}
	if len(text) == 0 {
		return
	}

	if err := h.svcCtx.Notifier.Notify(ctx, chatID, text); err != nil {
		logx.WithContext(ctx).Errorf("bot reply to chat %d: %v", chatID, err)
	}
}

// Serve registers the command menu and handles updates until ctx is done.
func (h *BotHandler) Serve(ctx context.Context, bot *tgbotapi.BotAPI) {
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(BotCommands...)); err != nil {
		logx.Errorf("set bot commands: %v", err)
	}
	logx.Infof("telegram bot started: @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}
