package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func RegisterHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).Register(&req)
		if err == nil {
			setSessionCookie(w, svcCtx, resp.Token)
		}
		replyCreated(w, r, resp, err)
	}
}

func LoginHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).Login(&req)
		if err == nil {
			setSessionCookie(w, svcCtx, resp.Token)
		}
		reply(w, r, resp, err)
	}
}

func LogoutHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).Logout()
		if err == nil {
			clearSessionCookie(w, svcCtx)
		}
		reply(w, r, resp, err)
	}
}

func MeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).Me()
		reply(w, r, resp, err)
	}
}

func UpdateProfileHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateProfileReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).UpdateProfile(&req)
		reply(w, r, resp, err)
	}
}

func DeleteAccountHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewAuthLogic(r.Context(), svcCtx).DeleteAccount()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		clearSessionCookie(w, svcCtx)
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
