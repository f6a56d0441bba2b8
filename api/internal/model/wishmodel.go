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

const WishCollection = "wishes"

type Wish struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Status      finance.WishStatus `bson:"status" json:"status"`
	AddedAt     time.Time          `bson:"addedAt" json:"addedAt"`
	BoughtAt    *time.Time         `bson:"boughtAt" json:"boughtAt"`
}

func (w *Wish) State() finance.WishStatus { return w.Status }
func (w *Wish) Added() time.Time          { return w.AddedAt }
func (w *Wish) Cost() float64             { return w.Price }

// PurchaseFunc builds the expense recorded for a wish being bought.
type PurchaseFunc func(w *Wish) *Transaction

type WishModel interface {
	Insert(ctx context.Context, data *Wish) error
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Wish, error)
	// Buy flips an active wish to bought and inserts the transaction built
	// by purchase, atomically: either both writes happen or neither does.
	Buy(ctx context.Context, owner primitive.ObjectID, id string, at time.Time, purchase PurchaseFunc) (*Wish, *Transaction, error)
	// Archive flips an active wish to archived.
	Archive(ctx context.Context, owner primitive.ObjectID, id string) (*Wish, error)
	Delete(ctx context.Context, owner primitive.ObjectID, id string) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type defaultWishModel struct {
	conn *mon.Model
	txs  *mon.Model
}

func newWishModel(conn, txs *mon.Model) WishModel {
	return &defaultWishModel{conn: conn, txs: txs}
}

func (m *defaultWishModel) Insert(ctx context.Context, data *Wish) error {
	data.ID = newID(data.ID)
	if data.AddedAt.IsZero() {
		data.AddedAt = time.Now()
	}
	if data.Status == "" {
		data.Status = finance.WishActive
	}

	_, err := m.conn.InsertOne(ctx, data)
	return err
}

func (m *defaultWishModel) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Wish, error) {
	var data []*Wish
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})
	if err := m.conn.Find(ctx, &data, bson.M{"user": owner}, opts); err != nil {
		return nil, err
	}

	return data, nil
}

func (m *defaultWishModel) Buy(ctx context.Context, owner primitive.ObjectID, id string, at time.Time,
	purchase PurchaseFunc) (*Wish, *Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, nil, err
	}

	sess, err := m.conn.StartSession()
	if err != nil {
		return nil, nil, err
	}
	defer sess.EndSession(ctx)

	var (
		wish Wish
		tx   *Transaction
	)
	_, err = sess.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := m.transition(sessCtx, &wish, owner, oid, bson.M{
			"status":   finance.WishBought,
			"boughtAt": at,
		}); err != nil {
			return nil, err
		}

		tx = purchase(&wish)
		prepareTransaction(tx, at)
		if _, err := m.txs.InsertOne(sessCtx, tx); err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &wish, tx, nil
}

func (m *defaultWishModel) Archive(ctx context.Context, owner primitive.ObjectID, id string) (*Wish, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var wish Wish
	if err := m.transition(ctx, &wish, owner, oid, bson.M{"status": finance.WishArchived}); err != nil {
		return nil, err
	}

	return &wish, nil
}

// transition applies set to the wish only while it is active. When nothing
// matches it tells a closed wish apart from a missing one.
func (m *defaultWishModel) transition(ctx context.Context, v *Wish, owner, oid primitive.ObjectID, set bson.M) error {
	err := m.conn.FindOneAndUpdate(ctx, v,
		bson.M{"_id": oid, "user": owner, "status": finance.WishActive},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != mon.ErrNotFound {
		return err
	}

	var existing Wish
	switch err := m.conn.FindOne(ctx, &existing, bson.M{"_id": oid, "user": owner}); err {
	case nil:
		return ErrWishClosed
	case mon.ErrNotFound:
		return ErrNotFound
	default:
		return err
	}
}

func (m *defaultWishModel) Delete(ctx context.Context, owner primitive.ObjectID, id string) error {
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

func (m *defaultWishModel) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"user": owner})
}
