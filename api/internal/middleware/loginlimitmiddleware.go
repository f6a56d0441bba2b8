package middleware

import (
	"net/http"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// LoginLimitMiddleware throttles login and register attempts per client
// address. A nil limiter lets every request through.
type LoginLimitMiddleware struct {
	limiter *limit.PeriodLimit
}

func NewLoginLimitMiddleware(limiter *limit.PeriodLimit) *LoginLimitMiddleware {
	return &LoginLimitMiddleware{limiter: limiter}
}

func (m *LoginLimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	if m.limiter == nil {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code, err := m.limiter.TakeCtx(r.Context(), httpx.GetRemoteAddr(r))
		if err != nil {
			// the limiter store is down, don't lock everybody out
			logx.WithContext(r.Context()).Errorf("login limiter: %v", err)
			next(w, r)
			return
		}

		if code == limit.OverQuota {
			httpx.ErrorCtx(r.Context(), w, errorx.NewTooManyRequests())
			return
		}

		next(w, r)
	}
}
