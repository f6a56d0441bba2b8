package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/qx/mybudget/api/internal/catalog"
	"github.com/qx/mybudget/api/internal/config"
	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/middleware"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/session"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/go-zero/rest/pathvar"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func init() {
	httpx.SetErrorHandlerCtx(errorx.Handler)
}

type chatLog struct {
	mu   sync.Mutex
	sent map[int64][]string
}

func (c *chatLog) Notify(_ context.Context, chatID int64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sent == nil {
		c.sent = make(map[int64][]string)
	}
	c.sent[chatID] = append(c.sent[chatID], text)
	return nil
}

func newServiceContext() (*svc.ServiceContext, *chatLog) {
	var c config.Config
	c.Auth.CookieName = "token"
	c.Catalog.PurchaseCategory = "shopping"
	c.Wishlist.MaturityDays = 30

	chats := &chatLog{}
	svcCtx := &svc.ServiceContext{
		Config:      c,
		Models:      model.NewMemoryModels(),
		Issuer:      session.NewIssuer("secret", time.Hour),
		Revocations: session.NewMemoryRevocations(),
		Catalog:     catalog.Default(),
		Notifier:    chats,
		Now:         func() time.Time { return testNow },
	}
	svcCtx.Auth = middleware.NewAuthMiddleware(middleware.AuthConfig{
		CookieName:  c.Auth.CookieName,
		Issuer:      svcCtx.Issuer,
		Revocations: svcCtx.Revocations,
		Users:       svcCtx.Models.Users,
	}).Handle
	svcCtx.LoginLimit = middleware.NewLoginLimitMiddleware(nil).Handle

	return svcCtx, chats
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func withToken(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	return r
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func register(t *testing.T, svcCtx *svc.ServiceContext, name, phone string) string {
	t.Helper()

	body := `{"name":"` + name + `","email":"` + name + `@example.com","password":"secret1","phone":"` + phone + `"}`
	rec := serve(RegisterHandler(svcCtx), jsonRequest(http.MethodPost, "/api/auth/register", body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[types.UserResp](t, rec).Token
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterSetsCookie(t *testing.T) {
	svcCtx, _ := newServiceContext()

	rec := serve(RegisterHandler(svcCtx), jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":" Alice@Example.com ","password":"secret1"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[types.UserResp](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "alice@example.com", resp.Data.Email)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rec.Body.String(), "password")

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	svcCtx, _ := newServiceContext()

	rec := serve(RegisterHandler(svcCtx), jsonRequest(http.MethodPost, "/api/auth/register", `{"name":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorx.Body](t, rec)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestLoginAndLogout(t *testing.T) {
	svcCtx, _ := newServiceContext()
	register(t, svcCtx, "alice", "")

	rec := serve(LoginHandler(svcCtx), jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode[errorx.Body](t, rec).Error)

	rec = serve(LoginHandler(svcCtx), jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := sessionCookie(rec).Value

	me := svcCtx.Auth(MeHandler(svcCtx))
	rec = serve(me, withToken(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[types.UserResp](t, rec).Data.Name)

	rec = serve(svcCtx.Auth(LogoutHandler(svcCtx)),
		withToken(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, sessionCookie(rec).MaxAge)

	rec = serve(me, withToken(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactionRoutes(t *testing.T) {
	svcCtx, _ := newServiceContext()
	alice := register(t, svcCtx, "alice", "")
	bob := register(t, svcCtx, "bob", "")

	rec := serve(svcCtx.Auth(CreateTransactionHandler(svcCtx)), withToken(jsonRequest(http.MethodPost,
		"/api/transactions", `{"amount":-12.5,"category":"food","note":"lunch","date":"2026-10-02"}`), alice))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[types.TransactionResp](t, rec).Data.ID.Hex()

	rec = serve(svcCtx.Auth(ListTransactionsHandler(svcCtx)), withToken(httptest.NewRequest(http.MethodGet,
		"/api/transactions?type=expense&search=lunch", nil), alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[types.TransactionListResp](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 12.5, list.Totals.Expense)

	rec = serve(svcCtx.Auth(ListTransactionsHandler(svcCtx)), withToken(httptest.NewRequest(http.MethodGet,
		"/api/transactions?type=sideways", nil), alice))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	update := svcCtx.Auth(UpdateTransactionHandler(svcCtx))
	r := withToken(jsonRequest(http.MethodPut, "/api/transactions/"+id,
		`{"amount":-20,"category":"food"}`), bob)
	rec = serve(update, pathvar.WithVars(r, map[string]string{"id": id}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	r = withToken(jsonRequest(http.MethodPut, "/api/transactions/"+id,
		`{"amount":-20,"category":"food","note":"dinner"}`), alice)
	rec = serve(update, pathvar.WithVars(r, map[string]string{"id": id}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[types.TransactionResp](t, rec).Data
	assert.Equal(t, id, updated.ID.Hex())
	assert.Equal(t, -20.0, updated.Amount)
	assert.Equal(t, "dinner", updated.Note)

	r = withToken(httptest.NewRequest(http.MethodDelete, "/api/transactions/nope", nil), alice)
	rec = serve(svcCtx.Auth(DeleteTransactionHandler(svcCtx)), pathvar.WithVars(r, map[string]string{"id": "nope"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	r = withToken(httptest.NewRequest(http.MethodDelete, "/api/transactions/"+id, nil), alice)
	rec = serve(svcCtx.Auth(DeleteTransactionHandler(svcCtx)), pathvar.WithVars(r, map[string]string{"id": id}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportTransactions(t *testing.T) {
	svcCtx, _ := newServiceContext()
	alice := register(t, svcCtx, "alice", "")

	rec := serve(svcCtx.Auth(CreateTransactionHandler(svcCtx)), withToken(jsonRequest(http.MethodPost,
		"/api/transactions", `{"amount":1500,"category":"salary","date":"2026-10-01"}`), alice))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(svcCtx.Auth(ExportTransactionsHandler(svcCtx)), withToken(httptest.NewRequest(http.MethodGet,
		"/api/transactions/export", nil), alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions-2026-10-16.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Date,Category,Description,Type,Amount\n"))
}

func TestWishBuyRoute(t *testing.T) {
	svcCtx, _ := newServiceContext()
	alice := register(t, svcCtx, "alice", "")

	rec := serve(svcCtx.Auth(CreateWishHandler(svcCtx)), withToken(jsonRequest(http.MethodPost,
		"/api/wishes", `{"name":"Headphones","price":120}`), alice))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[types.WishResp](t, rec).Data.ID.Hex()

	buy := svcCtx.Auth(BuyWishHandler(svcCtx))
	r := withToken(httptest.NewRequest(http.MethodPut, "/api/wishes/"+id+"/buy", nil), alice)
	rec = serve(buy, pathvar.WithVars(r, map[string]string{"id": id}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bought := decode[types.BuyWishResp](t, rec)
	assert.Equal(t, -120.0, bought.Transaction.Amount)

	r = withToken(httptest.NewRequest(http.MethodPut, "/api/wishes/"+id+"/buy", nil), alice)
	rec = serve(buy, pathvar.WithVars(r, map[string]string{"id": id}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAccountClearsCookie(t *testing.T) {
	svcCtx, _ := newServiceContext()
	alice := register(t, svcCtx, "alice", "")

	rec := serve(svcCtx.Auth(DeleteAccountHandler(svcCtx)),
		withToken(httptest.NewRequest(http.MethodDelete, "/api/auth/delete-account", nil), alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, -1, sessionCookie(rec).MaxAge)

	_, err := svcCtx.Models.Users.FindByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPublicRoutes(t *testing.T) {
	svcCtx, _ := newServiceContext()

	rec := serve(HealthHandler(svcCtx), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[types.HealthResp](t, rec)
	assert.Equal(t, "OK", health.Status)

	rec = serve(CategoriesHandler(svcCtx), httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"food"`)
}

func TestBotHandler(t *testing.T) {
	svcCtx, chats := newServiceContext()
	h := NewBotHandler(svcCtx)

	command := func(chatID int64, text string) tgbotapi.Update {
		return tgbotapi.Update{Message: &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: chatID},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
		}}
	}

	h.HandleUpdate(context.Background(), command(42, "/start"))
	h.HandleUpdate(context.Background(), command(42, "/unknown"))
	h.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		Text: "hello",
	}})
	h.HandleUpdate(context.Background(), command(7, "/summary"))

	require.Len(t, chats.sent[42], 1)
	assert.Contains(t, chats.sent[42][0], "<code>42</code>")
	require.Len(t, chats.sent[7], 1)
	assert.Contains(t, chats.sent[7][0], "not linked")
}
