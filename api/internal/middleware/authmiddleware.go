package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/session"
	"github.com/zeromicro/go-zero/rest/httpx"
)

const bearerPrefix = "Bearer "

type AuthConfig struct {
	CookieName  string
	Issuer      *session.Issuer
	Revocations session.RevocationStore
	Users       model.UserModel
}

type AuthMiddleware struct {
	AuthConfig
}

func NewAuthMiddleware(c AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{AuthConfig: c}
}

// Handle rejects requests without a valid, unrevoked session token whose
// user still exists, and puts the caller into the request context.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r)
		if len(token) == 0 {
			httpx.ErrorCtx(r.Context(), w, errorx.NewUnauthorized("not authorized, no token"))
			return
		}

		claims, err := m.Issuer.Parse(token)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.NewUnauthorized("not authorized, token failed"))
			return
		}

		revoked, err := m.Revocations.Revoked(r.Context(), claims.ID)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, fmt.Errorf("check token revocation: %w", err))
			return
		}
		if revoked {
			httpx.ErrorCtx(r.Context(), w, errorx.NewUnauthorized("not authorized, token revoked"))
			return
		}

		user, err := m.Users.FindOne(r.Context(), claims.Subject)
		switch err {
		case nil:
		case model.ErrNotFound, model.ErrInvalidObjectId:
			httpx.ErrorCtx(r.Context(), w, errorx.NewUnauthorized("not authorized, user not found"))
			return
		default:
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		ctx := session.WithPrincipal(r.Context(), &session.Principal{
			User:      user,
			TokenID:   claims.ID,
			ExpiresAt: expiresAt,
		})
		next(w, r.WithContext(ctx))
	}
}

// token reads the session cookie first and falls back to a bearer header.
func (m *AuthMiddleware) token(r *http.Request) string {
	if cookie, err := r.Cookie(m.CookieName); err == nil && len(cookie.Value) > 0 {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	return ""
}
