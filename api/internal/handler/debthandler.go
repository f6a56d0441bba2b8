package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
)

func ListDebtsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewDebtLogic(r.Context(), svcCtx).List()
		reply(w, r, resp, err)
	}
}

func CreateDebtHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DebtReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewDebtLogic(r.Context(), svcCtx).Create(&req)
		replyCreated(w, r, resp, err)
	}
}

func PayDebtHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewDebtLogic(r.Context(), svcCtx).Pay(&req)
		reply(w, r, resp, err)
	}
}

func UnpayDebtHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewDebtLogic(r.Context(), svcCtx).Unpay(&req)
		reply(w, r, resp, err)
	}
}

func DeleteDebtHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewDebtLogic(r.Context(), svcCtx).Delete(&req)
		reply(w, r, resp, err)
	}
}
