package logic

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLen        = 50
	minPasswordLen    = 6
	invalidCredential = "invalid credentials"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type AuthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAuthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AuthLogic {
	return &AuthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validName(name string) error {
	if len(name) == 0 {
		return errorx.NewBadRequest("please enter your name")
	}
	if tooLong(name, maxNameLen) {
		return errorx.NewBadRequest("name cannot be longer than 50 characters")
	}

	return nil
}

// checkPhone normalizes phone and makes sure no other user holds it.
func (l *AuthLogic) checkPhone(phone string, self *model.User) (string, error) {
	phone = finance.NormalizePhone(phone)
	if !finance.ValidPhone(phone) {
		return "", errorx.NewBadRequest("please enter a valid phone number (e.g. +5491123456789)")
	}

	owner, err := l.svcCtx.Models.Users.FindByPhone(l.ctx, phone)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return phone, nil
	case err != nil:
		return "", fmt.Errorf("find user by phone: %w", err)
	case self != nil && owner.ID == self.ID:
		return phone, nil
	default:
		return "", errorx.NewConflict("this phone number is already registered")
	}
}

// checkTelegramChat makes sure no other user linked chatID.
func (l *AuthLogic) checkTelegramChat(chatID int64, self *model.User) error {
	owner, err := l.svcCtx.Models.Users.FindByTelegramChat(l.ctx, chatID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find user by telegram chat: %w", err)
	case owner.ID == self.ID:
		return nil
	default:
		return errorx.NewConflict("this Telegram chat is already linked to another account")
	}
}

func (l *AuthLogic) Register(req *types.RegisterReq) (*types.UserResp, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if len(name) == 0 || len(email) == 0 || len(req.Password) == 0 {
		return nil, errorx.NewBadRequest("please fill in all fields")
	}
	if err := validName(name); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(email) {
		return nil, errorx.NewBadRequest("please enter a valid email")
	}
	if len(req.Password) < minPasswordLen {
		return nil, errorx.NewBadRequest("password must be at least 6 characters")
	}

	_, err := l.svcCtx.Models.Users.FindByEmail(l.ctx, email)
	switch {
	case err == nil:
		return nil, errorx.NewConflict("an account with this email already exists")
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	var phone string
	if len(strings.TrimSpace(req.Phone)) > 0 {
		if phone, err = l.checkPhone(req.Phone, nil); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  string(hash),
		CreatedAt: l.svcCtx.Now(),
	}
	if err := l.svcCtx.Models.Users.Insert(l.ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errorx.NewConflict("an account with this email or phone already exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	l.Infof("user %s registered", user.ID.Hex())
	return l.signIn(user)
}

func (l *AuthLogic) Login(req *types.LoginReq) (*types.UserResp, error) {
	email := normalizeEmail(req.Email)
	if len(email) == 0 || len(req.Password) == 0 {
		return nil, errorx.NewBadRequest("please enter email and password")
	}

	user, err := l.svcCtx.Models.Users.FindByEmail(l.ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errorx.NewUnauthorized(invalidCredential)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.NewUnauthorized(invalidCredential)
	}

	return l.signIn(user)
}

func (l *AuthLogic) signIn(user *model.User) (*types.UserResp, error) {
	token, _, err := l.svcCtx.Issuer.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &types.UserResp{
		Success: true,
		Data:    user,
		Token:   token,
	}, nil
}

// Logout revokes the token the request was made with.
func (l *AuthLogic) Logout() (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Revocations.Revoke(l.ctx, p.TokenID, p.ExpiresAt); err != nil {
		return nil, fmt.Errorf("revoke token: %w", err)
	}

	return &types.MessageResp{Success: true, Message: "logged out"}, nil
}

func (l *AuthLogic) Me() (*types.UserResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	return &types.UserResp{Success: true, Data: p.User}, nil
}

func (l *AuthLogic) UpdateProfile(req *types.UpdateProfileReq) (*types.UserResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	user := *p.User
	if name := strings.TrimSpace(req.Name); len(name) > 0 {
		if err := validName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if len(strings.TrimSpace(req.Phone)) > 0 {
		if user.Phone, err = l.checkPhone(req.Phone, &user); err != nil {
			return nil, err
		}
	}
	switch {
	case req.UnlinkTelegram:
		user.TelegramChatID = 0
	case req.TelegramChatID != 0:
		if err := l.checkTelegramChat(req.TelegramChatID, &user); err != nil {
			return nil, err
		}
		user.TelegramChatID = req.TelegramChatID
	}

	if err := l.svcCtx.Models.Users.Update(l.ctx, &user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errorx.NewConflict("this phone number or Telegram chat is already in use")
		}
		return nil, modelError(err, "update user", "user not found")
	}

	return &types.UserResp{Success: true, Data: &user}, nil
}

// DeleteAccount removes the caller and everything they own, then revokes
// the token the request was made with.
func (l *AuthLogic) DeleteAccount() (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	m := l.svcCtx.Models
	id := p.User.ID
	cascade := []struct {
		name string
		fn   func() (int64, error)
	}{
		{"transactions", func() (int64, error) { return m.Transactions.DeleteByOwner(l.ctx, id) }},
		{"budgets", func() (int64, error) { return m.Budgets.DeleteByOwner(l.ctx, id) }},
		{"debts", func() (int64, error) { return m.Debts.DeleteByCreditor(l.ctx, id) }},
		{"wishes", func() (int64, error) { return m.Wishes.DeleteByOwner(l.ctx, id) }},
		{"subscriptions", func() (int64, error) { return m.Subscriptions.DeleteByOwner(l.ctx, id) }},
	}
	for _, step := range cascade {
		n, err := step.fn()
		if err != nil {
			return nil, fmt.Errorf("delete %s of %s: %w", step.name, id.Hex(), err)
		}
		l.Infof("deleted %d %s of user %s", n, step.name, id.Hex())
	}

	if err := m.Users.Delete(l.ctx, id.Hex()); err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("delete user %s: %w", id.Hex(), err)
	}
	if err := l.svcCtx.Revocations.Revoke(l.ctx, p.TokenID, p.ExpiresAt); err != nil {
		l.Errorf("revoke token of deleted user %s: %v", id.Hex(), err)
	}

	return &types.MessageResp{Success: true, Message: "account deleted"}, nil
}
