package logic

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/finance"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	maxSubscriptionNameLen = 100
	defaultSubCategory     = "entertainment"
	subscriptionNotFound   = "subscription not found"
)

type SubscriptionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSubscriptionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SubscriptionLogic {
	return &SubscriptionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func subscriptionView(s *model.Subscription) *types.Subscription {
	return &types.Subscription{
		Subscription:  s,
		MonthlyAmount: finance.MonthlyAmount(s.Amount, s.BillingCycle),
		YearlyAmount:  finance.YearlyAmount(s.Amount, s.BillingCycle),
	}
}

func subscriptionViews(list []*model.Subscription) []*types.Subscription {
	views := make([]*types.Subscription, 0, len(list))
	for _, s := range list {
		views = append(views, subscriptionView(s))
	}
	return views
}

// List partitions the caller's subscriptions and projects the cost of the
// active ones.
func (l *SubscriptionLogic) List() (*types.SubscriptionListResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	subs, err := l.svcCtx.Models.Subscriptions.FindByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("find subscriptions: %w", err)
	}

	active, paused := finance.Partition(subs)
	return &types.SubscriptionListResp{
		Success: true,
		Count:   len(subs),
		Data: types.SubscriptionBook{
			Active: subscriptionViews(active),
			Paused: subscriptionViews(paused),
		},
		Totals: finance.Totals(subs),
	}, nil
}

func (l *SubscriptionLogic) Create(req *types.SubscriptionReq) (*types.SubscriptionResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if len(name) == 0 {
		return nil, errorx.NewBadRequest("service name is required")
	}
	if tooLong(name, maxSubscriptionNameLen) {
		return nil, errorx.NewBadRequest("name cannot be longer than 100 characters")
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return nil, errorx.NewBadRequest("amount must be greater than 0")
	}

	cycle := finance.Cycle(req.BillingCycle)
	if len(cycle) == 0 {
		cycle = finance.Monthly
	}
	if !cycle.Valid() {
		return nil, errorx.NewBadRequest("billing cycle must be monthly or yearly")
	}
	category := strings.TrimSpace(req.Category)
	if len(category) == 0 {
		category = defaultSubCategory
	}

	sub := &model.Subscription{
		User:         p.User.ID,
		Name:         name,
		Amount:       req.Amount,
		BillingCycle: cycle,
		Category:     category,
		IsActive:     true,
		CreatedAt:    l.svcCtx.Now(),
	}
	if err := l.svcCtx.Models.Subscriptions.Insert(l.ctx, sub); err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	return &types.SubscriptionResp{Success: true, Data: subscriptionView(sub)}, nil
}

// Toggle pauses an active subscription or resumes a paused one.
func (l *SubscriptionLogic) Toggle(req *types.IdPath) (*types.SubscriptionResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	sub, err := l.svcCtx.Models.Subscriptions.Toggle(l.ctx, p.User.ID, req.Id)
	if err != nil {
		return nil, modelError(err, "toggle subscription", subscriptionNotFound)
	}

	return &types.SubscriptionResp{Success: true, Data: subscriptionView(sub)}, nil
}

func (l *SubscriptionLogic) Delete(req *types.IdPath) (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Models.Subscriptions.Delete(l.ctx, p.User.ID, req.Id); err != nil {
		return nil, modelError(err, "delete subscription", subscriptionNotFound)
	}

	return &types.MessageResp{Success: true, Message: "subscription deleted"}, nil
}
