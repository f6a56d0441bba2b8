package logic

import (
	"context"

	"github.com/qx/mybudget/api/internal/svc"
	"github.com/qx/mybudget/api/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
)

type SystemLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSystemLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SystemLogic {
	return &SystemLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SystemLogic) Categories() (*types.CategoriesResp, error) {
	return &types.CategoriesResp{Success: true, Data: l.svcCtx.Catalog}, nil
}

// Health reports the service as up and whether the store answers.
func (l *SystemLogic) Health() (*types.HealthResp, error) {
	database := "connected"
	if err := l.svcCtx.Models.Ping(l.ctx); err != nil {
		l.Errorf("health check: %v", err)
		database = "disconnected"
	}

	return &types.HealthResp{
		Status:   "OK",
		Message:  "MyBudget API is running",
		Database: database,
	}, nil
}
