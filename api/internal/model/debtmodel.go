package model

import (
	"context"
	"time"

	"github.com/qx/mybudget/api/internal/finance"
	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DebtCollection = "debts"

// Debt is owned by Creditor, the user who created it. With IsMyDebt false
// the creditor lent Amount to the person at DebtorPhone; with IsMyDebt true
// the creditor owes Amount to CreditorName and DebtorPhone is
// finance.SelfPhone.
type Debt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Creditor     primitive.ObjectID `bson:"creditor" json:"creditor"`
	DebtorPhone  string             `bson:"debtorPhone" json:"debtorPhone"`
	DebtorName   string             `bson:"debtorName" json:"debtorName"`
	IsMyDebt     bool               `bson:"isMyDebt" json:"isMyDebt"`
	CreditorName string             `bson:"creditorName,omitempty" json:"creditorName,omitempty"`
	Amount       float64            `bson:"amount" json:"amount"`
	Description  string             `bson:"description" json:"description"`
	IsPaid       bool               `bson:"isPaid" json:"isPaid"`
	PaidAt       *time.Time         `bson:"paidAt" json:"paidAt"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

func (d *Debt) Variant() finance.Debt {
	if d.IsMyDebt {
		return finance.OwedRecord{
			OwingUser:        d.Creditor.Hex(),
			CounterpartyName: d.CreditorName,
			Value:            d.Amount,
			Paid:             d.IsPaid,
		}
	}

	return finance.LentRecord{
		CreditorUser:      d.Creditor.Hex(),
		CounterpartyPhone: d.DebtorPhone,
		CounterpartyName:  d.DebtorName,
		Value:             d.Amount,
		Paid:              d.IsPaid,
	}
}

type DebtModel interface {
	Insert(ctx context.Context, data *Debt) error
	// FindByCreditor returns the records the user owns, newest first.
	FindByCreditor(ctx context.Context, creditor primitive.ObjectID) ([]*Debt, error)
	// FindLentToPhone returns lent records that other users created about
	// the given counterparty phone, newest first.
	FindLentToPhone(ctx context.Context, phone string, exclude primitive.ObjectID) ([]*Debt, error)
	// SetPaid marks the record paid at paidAt, or unpaid when paidAt is nil.
	SetPaid(ctx context.Context, creditor primitive.ObjectID, id string, paidAt *time.Time) (*Debt, error)
	Delete(ctx context.Context, creditor primitive.ObjectID, id string) error
	DeleteByCreditor(ctx context.Context, creditor primitive.ObjectID) (int64, error)
}

type defaultDebtModel struct {
	conn *mon.Model
}

func newDebtModel(conn *mon.Model) DebtModel {
	return &defaultDebtModel{conn: conn}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func (m *defaultDebtModel) Insert(ctx context.Context, data *Debt) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	_, err := m.conn.InsertOne(ctx, data)
	return err
}

func (m *defaultDebtModel) FindByCreditor(ctx context.Context, creditor primitive.ObjectID) ([]*Debt, error) {
	var data []*Debt
	if err := m.conn.Find(ctx, &data, bson.M{"creditor": creditor}, options.Find().SetSort(newestFirst)); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultDebtModel) FindLentToPhone(ctx context.Context, phone string, exclude primitive.ObjectID) ([]*Debt, error) {
	var data []*Debt
	filter := bson.M{
		"debtorPhone": phone,
		"isMyDebt":    false,
		"creditor":    bson.M{"$ne": exclude},
	}
	if err := m.conn.Find(ctx, &data, filter, options.Find().SetSort(newestFirst)); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultDebtModel) SetPaid(ctx context.Context, creditor primitive.ObjectID, id string, paidAt *time.Time) (*Debt, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var data Debt
	err = m.conn.FindOneAndUpdate(ctx, &data,
		bson.M{"_id": oid, "creditor": creditor},
		bson.M{"$set": bson.M{"isPaid": paidAt != nil, "paidAt": paidAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	switch err {
	case nil:
		return &data, nil
	case mon.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultDebtModel) Delete(ctx context.Context, creditor primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	n, err := m.conn.DeleteOne(ctx, bson.M{"_id": oid, "creditor": creditor})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *defaultDebtModel) DeleteByCreditor(ctx context.Context, creditor primitive.ObjectID) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"creditor": creditor})
}
