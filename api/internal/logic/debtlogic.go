package logic

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/notify"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
)

const debtNotFound = "debt not found"

type DebtLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDebtLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DebtLogic {
	return &DebtLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Book builds both debt views of user: records they own, plus lent records
// other users created about user's phone.
func (l *DebtLogic) Book(user *model.User) (finance.Book[*model.Debt], error) {
	own, err := l.svcCtx.Models.Debts.FindByCreditor(l.ctx, user.ID)
	if err != nil {
		return finance.Book[*model.Debt]{}, fmt.Errorf("find own debts: %w", err)
	}

	var incoming []*model.Debt
	if len(user.Phone) > 0 {
		incoming, err = l.svcCtx.Models.Debts.FindLentToPhone(l.ctx, user.Phone, user.ID)
		if err != nil {
			return finance.Book[*model.Debt]{}, fmt.Errorf("find debts by phone: %w", err)
		}
	}

	self := finance.Party{UserID: user.ID.Hex(), Phone: user.Phone}
	return finance.Reconcile(self, own, incoming), nil
}

func (l *DebtLogic) List() (*types.DebtListResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	book, err := l.Book(p.User)
	if err != nil {
		return nil, err
	}

	return &types.DebtListResp{
		Success: true,
		Data:    types.DebtBook{OwedToMe: book.OwedToMe, IOwe: book.IOwe},
		Totals:  book.Totals(),
	}, nil
}

// Create records money the caller lent, or with IsMyDebt money they owe.
func (l *DebtLogic) Create(req *types.DebtReq) (*types.DebtResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return nil, errorx.NewBadRequest("amount must be greater than 0")
	}

	if req.IsMyDebt {
		return l.createOwed(p.User, req)
	}
	return l.createLent(p.User, req)
}

func (l *DebtLogic) createLent(user *model.User, req *types.DebtReq) (*types.DebtResp, error) {
	phone := finance.NormalizePhone(req.Phone)
	if len(phone) == 0 {
		return nil, errorx.NewBadRequest("the debtor's phone is required")
	}
	if !finance.ValidPhone(phone) {
		return nil, errorx.NewBadRequest("please enter a valid phone number")
	}
	if finance.SamePhone(phone, user.Phone) {
		return nil, errorx.NewBadRequest("you cannot lend money to yourself")
	}

	debt := &model.Debt{
		Creditor:    user.ID,
		DebtorPhone: phone,
		DebtorName:  strings.TrimSpace(req.Name),
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   l.svcCtx.Now(),
	}
	if err := l.svcCtx.Models.Debts.Insert(l.ctx, debt); err != nil {
		return nil, fmt.Errorf("insert debt: %w", err)
	}

	l.notifyDebtor(phone, notify.DebtCreated(user.Name, debt.Amount, debt.Description))
	return &types.DebtResp{Success: true, Data: debt}, nil
}

func (l *DebtLogic) createOwed(user *model.User, req *types.DebtReq) (*types.DebtResp, error) {
	creditorName := strings.TrimSpace(req.CreditorName)
	if len(creditorName) == 0 {
		return nil, errorx.NewBadRequest("the creditor's name is required")
	}

	debt := &model.Debt{
		Creditor:     user.ID,
		DebtorPhone:  finance.SelfPhone,
		DebtorName:   user.Name,
		IsMyDebt:     true,
		CreditorName: creditorName,
		Amount:       req.Amount,
		Description:  strings.TrimSpace(req.Description),
		CreatedAt:    l.svcCtx.Now(),
	}
	if err := l.svcCtx.Models.Debts.Insert(l.ctx, debt); err != nil {
		return nil, fmt.Errorf("insert debt: %w", err)
	}

	return &types.DebtResp{Success: true, Data: debt}, nil
}

func (l *DebtLogic) Pay(req *types.IdPath) (*types.DebtResp, error) {
	now := l.svcCtx.Now()
	return l.setPaid(req.Id, &now)
}

func (l *DebtLogic) Unpay(req *types.IdPath) (*types.DebtResp, error) {
	return l.setPaid(req.Id, nil)
}

func (l *DebtLogic) setPaid(id string, paidAt *time.Time) (*types.DebtResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	debt, err := l.svcCtx.Models.Debts.SetPaid(l.ctx, p.User.ID, id, paidAt)
	if err != nil {
		return nil, modelError(err, "update debt", debtNotFound)
	}

	if paidAt != nil && !debt.IsMyDebt {
		l.notifyDebtor(debt.DebtorPhone, notify.DebtPaid(p.User.Name, debt.Amount))
	}
	return &types.DebtResp{Success: true, Data: debt}, nil
}

func (l *DebtLogic) Delete(req *types.IdPath) (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Models.Debts.Delete(l.ctx, p.User.ID, req.Id); err != nil {
		return nil, modelError(err, "delete debt", debtNotFound)
	}

	return &types.MessageResp{Success: true, Message: "debt deleted"}, nil
}

// notifyDebtor messages the registered user behind phone, if they linked a
// Telegram chat. Failures never fail the request.
func (l *DebtLogic) notifyDebtor(phone, text string) {
	debtor, err := l.svcCtx.Models.Users.FindByPhone(l.ctx, phone)
	if err != nil {
		if err != model.ErrNotFound {
			l.Errorf("find debtor by phone: %v", err)
		}
		return
	}
	if debtor.TelegramChatID == 0 {
		return
	}

	if err := l.svcCtx.Notifier.Notify(l.ctx, debtor.TelegramChatID, text); err != nil {
		l.Errorf("notify debtor %s: %v", debtor.ID.Hex(), err)
	}
}
