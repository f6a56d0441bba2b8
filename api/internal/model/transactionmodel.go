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

const TransactionCollection = "transactions"

// Transaction is a signed ledger entry: positive amounts are income,
// negative amounts are expenses.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Amount    float64            `bson:"amount" json:"amount"`
	Category  string             `bson:"category" json:"category"`
	Note      string             `bson:"note" json:"note"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (t *Transaction) Flow() finance.Flow {
	return finance.Flow{
		Amount:    t.Amount,
		Category:  t.Category,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}

// Flows converts ledger entries for the finance package.
func Flows(list []*Transaction) []finance.Flow {
	flows := make([]finance.Flow, 0, len(list))
	for _, t := range list {
		flows = append(flows, t.Flow())
	}

	return flows
}

type TransactionModel interface {
	Insert(ctx context.Context, data *Transaction) error
	FindOne(ctx context.Context, owner primitive.ObjectID, id string) (*Transaction, error)
	// FindByOwner returns the owner's entries, newest first.
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Transaction, error)
	Update(ctx context.Context, data *Transaction) error
	Delete(ctx context.Context, owner primitive.ObjectID, id string) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type defaultTransactionModel struct {
	conn *mon.Model
}

func newTransactionModel(conn *mon.Model) TransactionModel {
	return &defaultTransactionModel{conn: conn}
}

func (m *defaultTransactionModel) Insert(ctx context.Context, data *Transaction) error {
	prepareTransaction(data, time.Now())
	_, err := m.conn.InsertOne(ctx, data)
	return err
}

func prepareTransaction(data *Transaction, now time.Time) {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	if data.Date.IsZero() {
		data.Date = data.CreatedAt
	}
}

func (m *defaultTransactionModel) FindOne(ctx context.Context, owner primitive.ObjectID, id string) (*Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var data Transaction
	err = m.conn.FindOne(ctx, &data, bson.M{"_id": oid, "user": owner})
	switch err {
	case nil:
		return &data, nil
	case mon.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultTransactionModel) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Transaction, error) {
	var data []*Transaction
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	if err := m.conn.Find(ctx, &data, bson.M{"user": owner}, opts); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultTransactionModel) Update(ctx context.Context, data *Transaction) error {
	res, err := m.conn.UpdateOne(ctx, bson.M{"_id": data.ID, "user": data.User}, bson.M{"$set": bson.M{
		"amount":   data.Amount,
		"category": data.Category,
		"note":     data.Note,
		"date":     data.Date,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *defaultTransactionModel) Delete(ctx context.Context, owner primitive.ObjectID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	n, err := m.conn.DeleteOne(ctx, bson.M{"_id": oid, "user": owner})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *defaultTransactionModel) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"user": owner})
}
