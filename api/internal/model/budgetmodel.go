package model

import (
	"context"
	"time"

	"github.com/qx/mybudget/api/internal/finance"
	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BudgetCollection = "budgets"

// Budget is a monthly spending ceiling, unique per (user, category).
type Budget struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Category  string             `bson:"category" json:"category"`
	Limit     float64            `bson:"limit" json:"limit"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdateAt  time.Time          `bson:"updateAt" json:"updateAt"`
}

// Limits converts budgets for the finance package.
func Limits(list []*Budget) []finance.Limit {
	limits := make([]finance.Limit, 0, len(list))
	for _, b := range list {
		limits = append(limits, finance.Limit{Category: b.Category, Amount: b.Limit})
	}

	return limits
}

type BudgetModel interface {
	// Upsert sets the limit of the owner's budget for category, creating
	// the budget when there is none. It never leaves two budgets for the
	// same category. at stamps the update, and the creation when the budget
	// is new.
	Upsert(ctx context.Context, owner primitive.ObjectID, category string, limit float64, at time.Time) (*Budget, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Budget, error)
	Delete(ctx context.Context, owner primitive.ObjectID, id string) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type defaultBudgetModel struct {
	conn *mon.Model
}

func newBudgetModel(conn *mon.Model) BudgetModel {
	return &defaultBudgetModel{conn: conn}
}

func (m *defaultBudgetModel) Upsert(ctx context.Context, owner primitive.ObjectID, category string, limit float64,
	at time.Time) (*Budget, error) {
	b, err := m.upsert(ctx, owner, category, limit, at)
	// Two concurrent upserts of a new category can both miss and race on
	// insert; the unique index rejects the loser, whose second attempt
	// matches the winner's document.
	if mongo.IsDuplicateKeyError(err) {
		b, err = m.upsert(ctx, owner, category, limit, at)
	}

	return b, err
}

func (m *defaultBudgetModel) upsert(ctx context.Context, owner primitive.ObjectID, category string, limit float64,
	at time.Time) (*Budget, error) {
	var data Budget
	err := m.conn.FindOneAndUpdate(ctx, &data,
		bson.M{"user": owner, "category": category},
		bson.M{
			"$set":         bson.M{"limit": limit, "updateAt": at},
			"$setOnInsert": bson.M{"createdAt": at},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

func (m *defaultBudgetModel) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Budget, error) {
	var data []*Budget
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if err := m.conn.Find(ctx, &data, bson.M{"user": owner}, opts); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultBudgetModel) Delete(ctx context.Context, owner primitive.ObjectID, id string) error {
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

func (m *defaultBudgetModel) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"user": owner})
}
