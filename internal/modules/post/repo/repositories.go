package repo

import (
	"context"
	"errors"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ListQuery 分页列表查询
type ListQuery struct {
	FeaturedOnly bool
	// NewestFirst 为 false 时按插入顺序
	NewestFirst bool
	Skip        int
	Limit       int
}

// PostUpdate 仅非 nil 字段会被写入
type PostUpdate struct {
	Title          *string
	AuthorName     *string
	ImageLink      *string
	Description    *string
	Categories     []string
	IsFeaturedPost *bool
}

// ErrAuthorDetach 文章已删除，但从作者 posts 列表移除引用失败。
// 返回此错误时同时返回已删除的文章。
var ErrAuthorDetach = errors.New("detach post from author failed")

// PostStore 文章存储。
// 文章与作者 posts 列表的关联在同一个存储操作内维护；查询不到时返回 db.ErrNotFound。
type PostStore interface {
	CreateAndAttachToAuthor(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	IncrementViewCount(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, q ListQuery) ([]model.Post, int64, error)
	ListByCategory(ctx context.Context, category string) ([]model.Post, error)
	ListRelated(ctx context.Context, categories []string, excludeID string, limit int) ([]model.Post, error)
	Update(ctx context.Context, id string, update PostUpdate) (*model.Post, error)
	DeleteAndDetachFromAuthor(ctx context.Context, id string) (*model.Post, error)
}

func NewPostRepository(gdb *gorm.DB) PostStore {
	return &PostRepository{db: gdb}
}

func NewMongoPostRepository(database *mongo.Database) PostStore {
	return &MongoPostRepository{
		posts: database.Collection(db.CollectionPosts),
		users: database.Collection(db.CollectionUsers),
	}
}

// NewPostStore 按已打开的数据库选择实现
func NewPostStore(h *db.Handles) PostStore {
	if h.Mongo != nil {
		return NewMongoPostRepository(h.Mongo)
	}
	return NewPostRepository(h.SQL)
}
