package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
)

func ListSubscriptionsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewSubscriptionLogic(r.Context(), svcCtx).List()
		reply(w, r, resp, err)
	}
}

func CreateSubscriptionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SubscriptionReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewSubscriptionLogic(r.Context(), svcCtx).Create(&req)
		replyCreated(w, r, resp, err)
	}
}

func ToggleSubscriptionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewSubscriptionLogic(r.Context(), svcCtx).Toggle(&req)
		reply(w, r, resp, err)
	}
}

func DeleteSubscriptionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewSubscriptionLogic(r.Context(), svcCtx).Delete(&req)
		reply(w, r, resp, err)
	}
}
