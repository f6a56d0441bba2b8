package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/svc"
	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{Method: http.MethodGet, Path: "/health", Handler: HealthHandler(svcCtx)},
			{Method: http.MethodGet, Path: "/categories", Handler: CategoriesHandler(svcCtx)},
		},
		rest.WithPrefix("/api"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.LoginLimit},
			[]rest.Route{
				{Method: http.MethodPost, Path: "/register", Handler: RegisterHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/login", Handler: LoginHandler(svcCtx)},
			}...,
		),
		rest.WithPrefix("/api/auth"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.Auth},
			[]rest.Route{
				{Method: http.MethodPost, Path: "/logout", Handler: LogoutHandler(svcCtx)},
				{Method: http.MethodGet, Path: "/me", Handler: MeHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/me", Handler: UpdateProfileHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/delete-account", Handler: DeleteAccountHandler(svcCtx)},
			}...,
		),
		rest.WithPrefix("/api/auth"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.Auth},
			[]rest.Route{
				{Method: http.MethodGet, Path: "/transactions", Handler: ListTransactionsHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/transactions", Handler: CreateTransactionHandler(svcCtx)},
				{Method: http.MethodGet, Path: "/transactions/export", Handler: ExportTransactionsHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/transactions/reset", Handler: ResetTransactionsHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/transactions/:id", Handler: UpdateTransactionHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/transactions/:id", Handler: DeleteTransactionHandler(svcCtx)},

				{Method: http.MethodGet, Path: "/budgets", Handler: ListBudgetsHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/budgets", Handler: SaveBudgetHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/budgets/:id", Handler: DeleteBudgetHandler(svcCtx)},

				{Method: http.MethodGet, Path: "/debts", Handler: ListDebtsHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/debts", Handler: CreateDebtHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/debts/:id/pay", Handler: PayDebtHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/debts/:id/unpay", Handler: UnpayDebtHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/debts/:id", Handler: DeleteDebtHandler(svcCtx)},

				{Method: http.MethodGet, Path: "/wishes", Handler: ListWishesHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/wishes", Handler: CreateWishHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/wishes/:id/buy", Handler: BuyWishHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/wishes/:id/archive", Handler: ArchiveWishHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/wishes/:id", Handler: DeleteWishHandler(svcCtx)},

				{Method: http.MethodGet, Path: "/subscriptions", Handler: ListSubscriptionsHandler(svcCtx)},
				{Method: http.MethodPost, Path: "/subscriptions", Handler: CreateSubscriptionHandler(svcCtx)},
				{Method: http.MethodPut, Path: "/subscriptions/:id/toggle", Handler: ToggleSubscriptionHandler(svcCtx)},
				{Method: http.MethodDelete, Path: "/subscriptions/:id", Handler: DeleteSubscriptionHandler(svcCtx)},
			}...,
		),
		rest.WithPrefix("/api"),
	)
}
