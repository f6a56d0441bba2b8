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

type BudgetLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBudgetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BudgetLogic {
	return &BudgetLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// List returns the caller's budgets with this month's spending against each.
func (l *BudgetLogic) List() (*types.BudgetListResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := l.svcCtx.Models.Budgets.FindByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("find budgets: %w", err)
	}
	txs, err := l.svcCtx.Models.Transactions.FindByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	return &types.BudgetListResp{
		Success: true,
		Count:   len(budgets),
		Data:    budgets,
		Report:  finance.BudgetReport(model.Limits(budgets), model.Flows(txs), l.svcCtx.Now()),
	}, nil
}

// Save sets the limit of a category, creating its budget if needed.
func (l *BudgetLogic) Save(req *types.BudgetReq) (*types.BudgetResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if len(category) == 0 {
		return nil, errorx.NewBadRequest("category is required")
	}
	if !(req.Limit > 0) || math.IsInf(req.Limit, 0) {
		return nil, errorx.NewBadRequest("limit must be greater than 0")
	}

	b, err := l.svcCtx.Models.Budgets.Upsert(l.ctx, p.User.ID, category, req.Limit, l.svcCtx.Now())
	if err != nil {
		return nil, modelError(err, "save budget", "budget not found")
	}

	return &types.BudgetResp{Success: true, Data: b}, nil
}

func (l *BudgetLogic) Delete(req *types.IdPath) (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Models.Budgets.Delete(l.ctx, p.User.ID, req.Id); err != nil {
		return nil, modelError(err, "delete budget", "budget not found")
	}

	return &types.MessageResp{Success: true, Message: "budget deleted"}, nil
}
