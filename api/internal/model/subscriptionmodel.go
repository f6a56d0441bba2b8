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

const SubscriptionCollection = "subscriptions"

// Subscription stores only the raw amount; monthly and yearly equivalents
// are derived on read.
type Subscription struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	Name         string             `bson:"name" json:"name"`
	Amount       float64            `bson:"amount" json:"amount"`
	BillingCycle finance.Cycle      `bson:"billingCycle" json:"billingCycle"`
	Category     string             `bson:"category" json:"category"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

func (s *Subscription) Cost() (float64, finance.Cycle) { return s.Amount, s.BillingCycle }
func (s *Subscription) Active() bool                   { return s.IsActive }

type SubscriptionModel interface {
	Insert(ctx context.Context, data *Subscription) error
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Subscription, error)
	// Toggle flips the active flag and returns the updated subscription.
	Toggle(ctx context.Context, owner primitive.ObjectID, id string) (*Subscription, error)
	Delete(ctx context.Context, owner primitive.ObjectID, id string) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type defaultSubscriptionModel struct {
	conn *mon.Model
}

func newSubscriptionModel(conn *mon.Model) SubscriptionModel {
	return &defaultSubscriptionModel{conn: conn}
}

func (m *defaultSubscriptionModel) Insert(ctx context.Context, data *Subscription) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	_, err := m.conn.InsertOne(ctx, data)
	return err
}

func (m *defaultSubscriptionModel) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Subscription, error) {
	var data []*Subscription
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := m.conn.Find(ctx, &data, bson.M{"user": owner}, opts); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultSubscriptionModel) Toggle(ctx context.Context, owner primitive.ObjectID, id string) (*Subscription, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var data Subscription
	flip := mongo.Pipeline{{{Key: "$set", Value: bson.M{"isActive": bson.M{"$not": "$isActive"}}}}}
	err = m.conn.FindOneAndUpdate(ctx, &data,
		bson.M{"_id": oid, "user": owner},
		flip,
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

func (m *defaultSubscriptionModel) Delete(ctx context.Context, owner primitive.ObjectID, id string) error {
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

func (m *defaultSubscriptionModel) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"user": owner})
}
