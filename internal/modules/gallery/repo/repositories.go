package repo

import (
	"context"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// GalleryUpdate 仅非 nil 字段会被写入
type GalleryUpdate struct {
	Title       *string
	Description *string
	Tags        []string
}

func (u GalleryUpdate) isEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Tags == nil
}

// GalleryStore 图库存储，查询不到时返回 db.ErrNotFound
type GalleryStore interface {
	Create(ctx context.Context, image *model.GalleryImage) error
	FindByID(ctx context.Context, id string) (*model.GalleryImage, error)
	// List 按创建时间倒序；tag 为空时返回全部
	List(ctx context.Context, tag string) ([]model.GalleryImage, error)
	Update(ctx context.Context, id string, update GalleryUpdate) (*model.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

func NewGalleryRepository(gdb *gorm.DB) GalleryStore {
	return &GalleryRepository{db: gdb}
}

func NewMongoGalleryRepository(database *mongo.Database) GalleryStore {
	return &MongoGalleryRepository{images: database.Collection(db.CollectionGallery)}
}

// NewGalleryStore 按已打开的数据库选择实现
func NewGalleryStore(h *db.Handles) GalleryStore {
	if h.Mongo != nil {
		return NewMongoGalleryRepository(h.Mongo)
	}
	return NewGalleryRepository(h.SQL)
}
