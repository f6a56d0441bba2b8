package logic

import (
	"context"
	"errors"
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
	maxWishNameLen = 100
	wishNotFound   = "wish not found"
	wishNotePrefix = "Wishlist: "
)

type WishLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewWishLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WishLogic {
	return &WishLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *WishLogic) window() int {
	if days := l.svcCtx.Config.Wishlist.MaturityDays; days > 0 {
		return days
	}
	return finance.DefaultMaturityDays
}

func (l *WishLogic) view(w *model.Wish) *types.Wish {
	return &types.Wish{
		Wish:     w,
		Maturity: finance.MaturityOf(w.AddedAt, l.svcCtx.Now(), l.window()),
	}
}

func (l *WishLogic) List() (*types.WishListResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	wishes, err := l.svcCtx.Models.Wishes.FindByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("find wishes: %w", err)
	}

	views := make([]*types.Wish, 0, len(wishes))
	for _, w := range wishes {
		views = append(views, l.view(w))
	}

	return &types.WishListResp{
		Success: true,
		Count:   len(views),
		Data:    views,
		Totals:  finance.SummarizeWishes(wishes, l.svcCtx.Now(), l.window()),
	}, nil
}

func (l *WishLogic) Create(req *types.WishReq) (*types.WishResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if len(name) == 0 {
		return nil, errorx.NewBadRequest("wish name is required")
	}
	if tooLong(name, maxWishNameLen) {
		return nil, errorx.NewBadRequest("name cannot be longer than 100 characters")
	}
	if !(req.Price > 0) || math.IsInf(req.Price, 0) {
		return nil, errorx.NewBadRequest("price must be greater than 0")
	}

	wish := &model.Wish{
		User:        p.User.ID,
		Name:        name,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Status:      finance.WishActive,
		AddedAt:     l.svcCtx.Now(),
	}
	if err := l.svcCtx.Models.Wishes.Insert(l.ctx, wish); err != nil {
		return nil, fmt.Errorf("insert wish: %w", err)
	}

	return &types.WishResp{Success: true, Data: l.view(wish)}, nil
}

// Buy closes an active wish and records its price as an expense, both or
// neither. Readiness does not gate buying.
func (l *WishLogic) Buy(req *types.IdPath) (*types.BuyWishResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	category := l.svcCtx.Config.Catalog.PurchaseCategory
	wish, tx, err := l.svcCtx.Models.Wishes.Buy(l.ctx, p.User.ID, req.Id, l.svcCtx.Now(),
		func(w *model.Wish) *model.Transaction {
			return &model.Transaction{
				User:     w.User,
				Amount:   finance.PurchaseAmount(w.Price),
				Category: category,
				Note:     wishNotePrefix + w.Name,
			}
		})
	if err != nil {
		return nil, l.transitionError(err, "buy wish")
	}

	l.Infof("user %s bought wish %s", p.User.ID.Hex(), wish.ID.Hex())
	return &types.BuyWishResp{Success: true, Data: l.view(wish), Transaction: tx}, nil
}

func (l *WishLogic) Archive(req *types.IdPath) (*types.WishResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	wish, err := l.svcCtx.Models.Wishes.Archive(l.ctx, p.User.ID, req.Id)
	if err != nil {
		return nil, l.transitionError(err, "archive wish")
	}

	return &types.WishResp{Success: true, Data: l.view(wish)}, nil
}

func (l *WishLogic) transitionError(err error, op string) error {
	if errors.Is(err, model.ErrWishClosed) {
		return errorx.NewConflict("this wish is no longer active")
	}
	return modelError(err, op, wishNotFound)
}

func (l *WishLogic) Delete(req *types.IdPath) (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Models.Wishes.Delete(l.ctx, p.User.ID, req.Id); err != nil {
		return nil, modelError(err, "delete wish", wishNotFound)
	}

	return &types.MessageResp{Success: true, Message: "wish deleted"}, nil
}
