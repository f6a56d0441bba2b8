package logic

import (
	"bytes"
	"context"
	"encoding/csv"
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
	maxNoteLen          = 200
	transactionNotFound = "transaction not found"
)

var csvHeader = []string{"Date", "Category", "Description", "Type", "Amount"}

type TransactionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTransactionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TransactionLogic {
	return &TransactionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// filtered returns the caller's transactions of the requested kind whose
// category name, category key or note contains the search text.
func (l *TransactionLogic) filtered(req *types.TransactionListReq) ([]*model.Transaction, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	list, err := l.svcCtx.Models.Transactions.FindByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	kind := finance.Kind(req.Type)
	search := strings.ToLower(strings.TrimSpace(req.Search))
	out := make([]*model.Transaction, 0, len(list))
	for _, t := range list {
		if !kind.Matches(t.Amount) {
			continue
		}
		if len(search) > 0 && !l.matches(t, search) {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}

func (l *TransactionLogic) matches(t *model.Transaction, search string) bool {
	for _, field := range []string{l.svcCtx.Catalog.Name(t.Category), t.Category, t.Note} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}

	return false
}

func (l *TransactionLogic) List(req *types.TransactionListReq) (*types.TransactionListResp, error) {
	list, err := l.filtered(req)
	if err != nil {
		return nil, err
	}

	return &types.TransactionListResp{
		Success: true,
		Count:   len(list),
		Totals:  finance.Summarize(model.Flows(list)),
		Data:    list,
	}, nil
}

// validate checks req and fills t with its values.
func (l *TransactionLogic) validate(req *types.TransactionReq, t *model.Transaction) error {
	if req.Amount == 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return errorx.NewBadRequest("please enter a valid amount")
	}
	category := strings.TrimSpace(req.Category)
	if len(category) == 0 {
		return errorx.NewBadRequest("please select a category")
	}
	note := strings.TrimSpace(req.Note)
	if tooLong(note, maxNoteLen) {
		return errorx.NewBadRequest("note cannot be longer than 200 characters")
	}

	t.Amount = req.Amount
	t.Category = category
	t.Note = note
	if len(strings.TrimSpace(req.Date)) > 0 {
		date, err := parseDate(req.Date, l.svcCtx.Now().Location())
		if err != nil {
			return err
		}
		t.Date = date
	}

	return nil
}

func (l *TransactionLogic) Create(req *types.TransactionReq) (*types.TransactionResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	t := &model.Transaction{
		User:      p.User.ID,
		CreatedAt: l.svcCtx.Now(),
	}
	if err := l.validate(req, t); err != nil {
		return nil, err
	}
	if err := l.svcCtx.Models.Transactions.Insert(l.ctx, t); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return &types.TransactionResp{Success: true, Data: t}, nil
}

func (l *TransactionLogic) Update(req *types.UpdateTransactionReq) (*types.TransactionResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	t, err := l.svcCtx.Models.Transactions.FindOne(l.ctx, p.User.ID, req.Id)
	if err != nil {
		return nil, modelError(err, "find transaction", transactionNotFound)
	}
	if err := l.validate(&req.TransactionReq, t); err != nil {
		return nil, err
	}
	if err := l.svcCtx.Models.Transactions.Update(l.ctx, t); err != nil {
		return nil, modelError(err, "update transaction", transactionNotFound)
	}

	return &types.TransactionResp{Success: true, Data: t}, nil
}

func (l *TransactionLogic) Delete(req *types.IdPath) (*types.MessageResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Models.Transactions.Delete(l.ctx, p.User.ID, req.Id); err != nil {
		return nil, modelError(err, "delete transaction", transactionNotFound)
	}

	return &types.MessageResp{Success: true, Message: "transaction deleted"}, nil
}

// Reset deletes every transaction of the caller.
func (l *TransactionLogic) Reset() (*types.CountResp, error) {
	p, err := caller(l.ctx)
	if err != nil {
		return nil, err
	}

	n, err := l.svcCtx.Models.Transactions.DeleteByOwner(l.ctx, p.User.ID)
	if err != nil {
		return nil, fmt.Errorf("reset transactions: %w", err)
	}
	l.Infof("user %s reset %d transactions", p.User.ID.Hex(), n)

	return &types.CountResp{Success: true, Message: "transactions deleted", Count: n}, nil
}

// Export renders the filtered transactions as CSV, newest first.
func (l *TransactionLogic) Export(req *types.TransactionListReq) ([]byte, error) {
	list, err := l.filtered(req)
	if err != nil {
		return nil, err
	}

	loc := l.svcCtx.Now().Location()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range list {
		kind := finance.KindExpense
		if t.Amount > 0 {
			kind = finance.KindIncome
		}
		record := []string{
			t.Flow().EffectiveAt().In(loc).Format(dateLayout),
			l.svcCtx.Catalog.Name(t.Category),
			t.Note,
			string(kind),
			fmt.Sprintf("%.2f", math.Abs(t.Amount)),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()

	return buf.Bytes(), w.Error()
}
