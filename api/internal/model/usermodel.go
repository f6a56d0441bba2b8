package model

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const UserCollection = "users"

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	// Phone is stored normalized and is the join key for debts.
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Password       string    `bson:"password" json:"-"`
	TelegramChatID int64     `bson:"telegramChatId,omitempty" json:"telegramChatId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type UserModel interface {
	Insert(ctx context.Context, data *User) error
	FindOne(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	// FindByTelegramChat returns the user who linked the given chat.
	FindByTelegramChat(ctx context.Context, chatID int64) (*User, error)
	Update(ctx context.Context, data *User) error
	Delete(ctx context.Context, id string) error
}

type defaultUserModel struct {
	conn *mon.Model
}

func newUserModel(conn *mon.Model) UserModel {
	return &defaultUserModel{conn: conn}
}

func (m *defaultUserModel) Insert(ctx context.Context, data *User) error {
	data.ID = newID(data.ID)
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	_, err := m.conn.InsertOne(ctx, data)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (m *defaultUserModel) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m *defaultUserModel) FindByEmail(ctx context.Context, email string) (*User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *defaultUserModel) FindByPhone(ctx context.Context, phone string) (*User, error) {
	return m.findOne(ctx, bson.M{"phone": phone})
}

func (m *defaultUserModel) FindByTelegramChat(ctx context.Context, chatID int64) (*User, error) {
	return m.findOne(ctx, bson.M{"telegramChatId": chatID})
}

func (m *defaultUserModel) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var data User
	err := m.conn.FindOne(ctx, &data, filter)
	switch err {
	case nil:
		return &data, nil
	case mon.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// Update writes the profile fields of data. An empty phone or a zero chat
// id removes the field, so the sparse unique indexes never see it.
func (m *defaultUserModel) Update(ctx context.Context, data *User) error {
	res, err := m.conn.UpdateOne(ctx, bson.M{"_id": data.ID}, profileUpdate(data))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func profileUpdate(data *User) bson.M {
	set := bson.M{"name": data.Name, "email": data.Email}
	unset := bson.M{}
	if len(data.Phone) > 0 {
		set["phone"] = data.Phone
	} else {
		unset["phone"] = ""
	}
	if data.TelegramChatID != 0 {
		set["telegramChatId"] = data.TelegramChatID
	} else {
		unset["telegramChatId"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	return update
}

func (m *defaultUserModel) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	n, err := m.conn.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
