package handler

import (
	"net/http"
	"time"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// parse reads the request into v and answers 400 when it cannot.
func parse(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.Parse(r, v); err != nil {
		httpx.ErrorCtx(r.Context(), w, errorx.NewBadRequest(err.Error()))
		return false
	}

	return true
}

func reply(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err != nil {
		httpx.ErrorCtx(r.Context(), w, err)
		return
	}

	httpx.OkJsonCtx(r.Context(), w, resp)
}

func replyCreated(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err != nil {
		httpx.ErrorCtx(r.Context(), w, err)
		return
	}

	httpx.WriteJsonCtx(r.Context(), w, http.StatusCreated, resp)
}

func setSessionCookie(w http.ResponseWriter, svcCtx *svc.ServiceContext, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     svcCtx.Config.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(svcCtx.Issuer.Expire() / time.Second),
		HttpOnly: true,
		Secure:   svcCtx.Config.Auth.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, svcCtx *svc.ServiceContext) {
	http.SetCookie(w, &http.Cookie{
		Name:     svcCtx.Config.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   svcCtx.Config.Auth.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
