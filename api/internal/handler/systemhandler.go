package handler

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
)

func CategoriesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewSystemLogic(r.Context(), svcCtx).Categories()
		reply(w, r, resp, err)
	}
}

func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewSystemLogic(r.Context(), svcCtx).Health()
		reply(w, r, resp, err)
	}
}
