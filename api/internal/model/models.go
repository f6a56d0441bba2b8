package model

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Models groups every collection the service reads and writes.
type Models struct {
	Users         UserModel
	Transactions  TransactionModel
	Budgets       BudgetModel
	Debts         DebtModel
	Wishes        WishModel
	Subscriptions SubscriptionModel
	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}

// NewMongoModels connects every collection of db over one shared client and
// makes sure the indexes the models rely on exist. Buying a wish runs a multi-document
// transaction, so the deployment must be a replica set.
func NewMongoModels(ctx context.Context, uri, db string) (*Models, error) {
	conns := make(map[string]*mon.Model)
	for _, name := range []string{
		UserCollection, TransactionCollection, BudgetCollection,
		DebtCollection, WishCollection, SubscriptionCollection,
	} {
		conn, err := mon.NewModel(uri, db, name)
		if err != nil {
			return nil, err
		}
		conns[name] = conn
	}

	database := conns[UserCollection].Database()
	if err := EnsureIndexes(ctx, database); err != nil {
		return nil, err
	}

	return &Models{
		Users:         newUserModel(conns[UserCollection]),
		Transactions:  newTransactionModel(conns[TransactionCollection]),
		Budgets:       newBudgetModel(conns[BudgetCollection]),
		Debts:         newDebtModel(conns[DebtCollection]),
		Wishes:        newWishModel(conns[WishCollection], conns[TransactionCollection]),
		Subscriptions: newSubscriptionModel(conns[SubscriptionCollection]),
		Ping: func(ctx context.Context) error {
			return database.Client().Ping(ctx, readpref.Primary())
		},
	}, nil
}

// NewMemoryModels returns models that keep everything in process memory.
func NewMemoryModels() *Models {
	db := newMemoryDB()
	return &Models{
		Users:         memoryUserModel{db: db},
		Transactions:  memoryTransactionModel{db: db},
		Budgets:       memoryBudgetModel{db: db},
		Debts:         memoryDebtModel{db: db},
		Wishes:        memoryWishModel{db: db},
		Subscriptions: memorySubscriptionModel{db: db},
		Ping:          func(context.Context) error { return nil },
	}
}

var indexes = map[string][]mongo.IndexModel{
	UserCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "telegramChatId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	},
	TransactionCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
	},
	BudgetCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	DebtCollection: {
		{Keys: bson.D{{Key: "creditor", Value: 1}, {Key: "isPaid", Value: 1}}},
		{Keys: bson.D{{Key: "debtorPhone", Value: 1}, {Key: "isPaid", Value: 1}}},
	},
	WishCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}}},
	},
	SubscriptionCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}}},
	},
}

// EnsureIndexes creates the indexes of every collection. Creating an index
// that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexes {
		created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		logx.WithContext(ctx).Infof("indexes on %s: %v", name, created)
	}

	return nil
}
