package repo

import (
	"context"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// UserField 可做唯一性检查的字段
type UserField string

const (
	UserFieldUserName UserField = "userName"
	UserFieldEmail    UserField = "email"
)

func (f UserField) column() string {
	if f == UserFieldUserName {
		return "user_name"
	}
	return string(f)
}

// UserStore 用户存储；查询不到时返回 db.ErrNotFound
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUserNameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	FieldExists(ctx context.Context, field UserField, value string) (bool, error)
	Create(ctx context.Context, user *model.User) error
}

func NewUserRepository(gdb *gorm.DB) UserStore {
	return &UserRepository{db: gdb}
}

func NewMongoUserRepository(database *mongo.Database) UserStore {
	return &MongoUserRepository{coll: database.Collection(db.CollectionUsers)}
}

// NewUserStore 按已打开的数据库选择实现
func NewUserStore(h *db.Handles) UserStore {
	if h.Mongo != nil {
		return NewMongoUserRepository(h.Mongo)
	}
	return NewUserRepository(h.SQL)
}
