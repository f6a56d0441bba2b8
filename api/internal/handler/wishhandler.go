package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
)

func ListWishesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewWishLogic(r.Context(), svcCtx).List()
		reply(w, r, resp, err)
	}
}

func CreateWishHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.WishReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewWishLogic(r.Context(), svcCtx).Create(&req)
		replyCreated(w, r, resp, err)
	}
}

func BuyWishHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewWishLogic(r.Context(), svcCtx).Buy(&req)
		reply(w, r, resp, err)
	}
}

func ArchiveWishHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewWishLogic(r.Context(), svcCtx).Archive(&req)
		reply(w, r, resp, err)
	}
}

func DeleteWishHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewWishLogic(r.Context(), svcCtx).Delete(&req)
		reply(w, r, resp, err)
	}
}
