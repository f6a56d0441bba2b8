package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/qx/mybudget/api/internal/finance"
)

func DebtCreated(creditor string, amount float64, description string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>💸 New debt</b>\n%s recorded that you owe <code>%.2f</code>",
		html.EscapeString(creditor), amount))
	if description != "" {
		sb.WriteString("\n📝 " + html.EscapeString(description))
	}

	return sb.String()
}

func DebtPaid(creditor string, amount float64) string {
	return fmt.Sprintf("<b>✅ Debt settled</b>\n%s marked your debt of <code>%.2f</code> as paid",
		html.EscapeString(creditor), amount)
}

func Welcome(chatID int64) string {
	return fmt.Sprintf("<b>👋 Welcome!</b>\nYour chat id is <code>%d</code>.\n"+
		"Save it in your profile to receive debt notifications, then use:\n"+
		"/summary - balance, pending debts and subscriptions\n"+
		"/help - show this help", chatID)
}

func NotLinked(chatID int64) string {
	return fmt.Sprintf("⚠️ This chat is not linked to an account.\n"+
		"Save chat id <code>%d</code> in your profile first.", chatID)
}

func Summary(name string, sum finance.Summary, debts finance.DebtTotals, subs finance.SubscriptionTotals) string {
	return fmt.Sprintf("<b>📊 %s</b>\n"+
		"💵 Balance: <code>%.2f</code>\n"+
		"💰 Income: <code>%.2f</code>\n"+
		"💸 Expense: <code>%.2f</code>\n"+
		"📥 Owed to you: <code>%.2f</code>\n"+
		"📤 You owe: <code>%.2f</code>\n"+
		"🔁 Subscriptions: <code>%.2f</code>/month, <code>%.2f</code>/year (%d active)",
		html.EscapeString(name),
		sum.Balance, sum.Income, sum.Expense,
		debts.OwedToMePending, debts.IOwePending,
		subs.Monthly, subs.Yearly, subs.Count)
}
