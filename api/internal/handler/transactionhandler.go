package handler

import (
	"fmt"
	"net/http"

	"github.com/qx/mybudget/api/internal/logic"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListTransactionsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TransactionListReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewTransactionLogic(r.Context(), svcCtx).List(&req)
		reply(w, r, resp, err)
	}
}

func CreateTransactionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TransactionReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewTransactionLogic(r.Context(), svcCtx).Create(&req)
		replyCreated(w, r, resp, err)
	}
}

func UpdateTransactionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateTransactionReq
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewTransactionLogic(r.Context(), svcCtx).Update(&req)
		reply(w, r, resp, err)
	}
}

func DeleteTransactionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdPath
		if !parse(w, r, &req) {
			return
		}

		resp, err := logic.NewTransactionLogic(r.Context(), svcCtx).Delete(&req)
		reply(w, r, resp, err)
	}
}

func ResetTransactionsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewTransactionLogic(r.Context(), svcCtx).Reset()
		reply(w, r, resp, err)
	}
}

func ExportTransactionsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TransactionListReq
		if !parse(w, r, &req) {
			return
		}

		data, err := logic.NewTransactionLogic(r.Context(), svcCtx).Export(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		filename := fmt.Sprintf("transactions-%s.csv", svcCtx.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
