package types

import (
	"github.com/qx/mybudget/api/internal/catalog"
	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
)

type IdPath struct {
	Id string `path:"id"`
}

type MessageResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CountResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,optional"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileReq leaves empty fields untouched.
type UpdateProfileReq struct {
	Name           string `json:"name,optional"`
	Phone          string `json:"phone,optional"`
	TelegramChatID int64  `json:"telegramChatId,optional"`
	UnlinkTelegram bool   `json:"unlinkTelegram,optional"`
}

type UserResp struct {
	Success bool        `json:"success"`
	Data    *model.User `json:"data"`
	Token   string      `json:"token,omitempty"`
}

type TransactionListReq struct {
	Type   string `form:"type,default=all,options=all|income|expense"`
	Search string `form:"search,optional"`
}

type TransactionReq struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note,optional"`
	// Date is RFC 3339 or YYYY-MM-DD; empty means now.
	Date string `json:"date,optional"`
}

type UpdateTransactionReq struct {
	Id string `path:"id"`
	TransactionReq
}

type TransactionResp struct {
	Success bool               `json:"success"`
	Data    *model.Transaction `json:"data"`
}

type TransactionListResp struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Totals  finance.Summary      `json:"totals"`
	Data    []*model.Transaction `json:"data"`
}

type BudgetReq struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

type BudgetResp struct {
	Success bool          `json:"success"`
	Data    *model.Budget `json:"data"`
}

type BudgetListResp struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Data    []*model.Budget        `json:"data"`
	Report  []finance.BudgetStatus `json:"report"`
}

type DebtReq struct {
	IsMyDebt     bool    `json:"isMyDebt,optional"`
	Phone        string  `json:"phone,optional"`
	Name         string  `json:"name,optional"`
	CreditorName string  `json:"creditorName,optional"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description,optional"`
}

type DebtResp struct {
	Success bool        `json:"success"`
	Data    *model.Debt `json:"data"`
}

type DebtBook struct {
	OwedToMe []*model.Debt `json:"owedToMe"`
	IOwe     []*model.Debt `json:"iOwe"`
}

type DebtListResp struct {
	Success bool               `json:"success"`
	Data    DebtBook           `json:"data"`
	Totals  finance.DebtTotals `json:"totals"`
}

type WishReq struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,optional"`
}

// Wish is a stored wish with its derived maturity.
type Wish struct {
	*model.Wish
	finance.Maturity
}

type WishResp struct {
	Success bool  `json:"success"`
	Data    *Wish `json:"data"`
}

type WishListResp struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []*Wish            `json:"data"`
	Totals  finance.WishTotals `json:"totals"`
}

type BuyWishResp struct {
	Success     bool               `json:"success"`
	Data        *Wish              `json:"data"`
	Transaction *model.Transaction `json:"transaction"`
}

type SubscriptionReq struct {
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BillingCycle string  `json:"billingCycle,default=monthly,options=monthly|yearly"`
	Category     string  `json:"category,default=entertainment"`
}

// Subscription is a stored subscription with its derived costs.
type Subscription struct {
	*model.Subscription
	MonthlyAmount float64 `json:"monthlyAmount"`
	YearlyAmount  float64 `json:"yearlyAmount"`
}

type SubscriptionResp struct {
	Success bool          `json:"success"`
	Data    *Subscription `json:"data"`
}

type SubscriptionBook struct {
	Active []*Subscription `json:"active"`
	Paused []*Subscription `json:"paused"`
}

type SubscriptionListResp struct {
	Success bool                       `json:"success"`
	Count   int                        `json:"count"`
	Data    SubscriptionBook           `json:"data"`
	Totals  finance.SubscriptionTotals `json:"totals"`
}

type CategoriesResp struct {
	Success bool             `json:"success"`
	Data    *catalog.Catalog `json:"data"`
}

type HealthResp struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}
