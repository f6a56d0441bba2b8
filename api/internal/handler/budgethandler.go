package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
)

func ListBudgetsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewBudgetLogic(r.Context(), svcCtx).List()
		reply(w, r, resp, err)
	}
}

func SaveBudgetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BudgetReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewBudgetLogic(r.Context(), svcCtx).Save(&req)
		replyCreated(w, r, resp, err)
	}
}

func DeleteBudgetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewBudgetLogic(r.Context(), svcCtx).Delete(&req)
		reply(w, r, resp, err)
	}
}
