package logic

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/qx/mybudget/api/internal/catalog"
	"github.com/qx/mybudget/api/internal/config"
	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/session"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type sentMessage struct {
	chatID int64
	text   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) Notify(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func newTestContext() (*svc.ServiceContext, *recordingNotifier) {
	var c config.Config
	c.Auth.CookieName = "token"
	c.Catalog.PurchaseCategory = "shopping"
	c.Wishlist.MaturityDays = 30

	notifier := &recordingNotifier{}
	return &svc.ServiceContext{
		Config:      c,
		Models:      model.NewMemoryModels(),
		Issuer:      session.NewIssuer("secret", time.Hour),
		Revocations: session.NewMemoryRevocations(),
		Catalog:     catalog.Default(),
		Notifier:    notifier,
		Now:         func() time.Time { return testNow },
	}, notifier
}

// signedIn stores a user and returns a context carrying them as caller.
func signedIn(t *testing.T, svcCtx *svc.ServiceContext, name, phone string) context.Context {
	t.Helper()

	user := &model.User{Name: name, Email: name + "@example.com", Phone: phone}
	require.NoError(t, svcCtx.Models.Users.Insert(context.Background(), user))
	_, claims, err := svcCtx.Issuer.Issue(user.ID.Hex())
	require.NoError(t, err)

	return session.WithPrincipal(context.Background(), &session.Principal{
		User:      user,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

func userOf(ctx context.Context) *model.User {
	p, _ := session.FromContext(ctx)
	return p.User
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()

	var ce *errorx.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, code, ce.Code, ce.Msg)
}

func TestCallerRequired(t *testing.T) {
	svcCtx, _ := newTestContext()
	_, err := NewBudgetLogic(context.Background(), svcCtx).List()
	assertCode(t, err, http.StatusUnauthorized)
}
