package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/stores/redis/redistest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func init() {
	httpx.SetErrorHandlerCtx(errorx.Handler)
}

type authFixture struct {
	mw     *AuthMiddleware
	issuer *session.Issuer
	revoke session.RevocationStore
	user   *model.User
}

func newAuthFixture(t *testing.T) authFixture {
	models := model.NewMemoryModels()
	user := &model.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, models.Users.Insert(context.Background(), user))

	issuer := session.NewIssuer("secret", time.Hour)
	revoke := session.NewMemoryRevocations()
	return authFixture{
		mw: NewAuthMiddleware(AuthConfig{
			CookieName:  "token",
			Issuer:      issuer,
			Revocations: revoke,
			Users:       models.Users,
		}),
		issuer: issuer,
		revoke: revoke,
		user:   user,
	}
}

func whoami(w http.ResponseWriter, r *http.Request) {
	p, ok := session.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(p.User.Name))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) errorx.Body {
	var body errorx.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.issuer.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		code    int
	}{
		{
			name:    "no token",
			prepare: func(*http.Request) {},
			code:    http.StatusUnauthorized,
		},
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: token})
			},
			code: http.StatusOK,
		},
		{
			name: "bearer",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			code: http.StatusOK,
		},
		{
			name: "bad token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer nope")
			},
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			tt.prepare(r)
			rec := httptest.NewRecorder()
			f.mw.Handle(whoami)(rec, r)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "Alice", rec.Body.String())
			} else {
				assert.False(t, errorOf(t, rec).Success)
			}
		})
	}
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	token, claims, err := f.issuer.Issue(f.user.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, f.revoke.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.mw.Handle(whoami)(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "not authorized, token revoked", errorOf(t, rec).Error)
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.issuer.Issue(f.user.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, f.mw.Users.Delete(context.Background(), f.user.ID.Hex()))

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.mw.Handle(whoami)(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginLimitMiddleware(t *testing.T) {
	limiter := limit.NewPeriodLimit(60, 2, redistest.CreateRedis(t), "limit:login")
	handle := NewLoginLimitMiddleware(limiter).Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handle(rec, r)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginLimitMiddlewareDisabled(t *testing.T) {
	called := false
	handle := NewLoginLimitMiddleware(nil).Handle(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.True(t, called)
}
