package repo

import (
	"context"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	"slices"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func (r *GalleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	if image.ID == "" {
		image.ID = model.NewID()
	}
	if image.Tags == nil {
		image.Tags = []string{}
	}
	return db.TranslateError(r.db.WithContext(ctx).Create(image).Error)
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, db.TranslateError(err)
	}
	return &image, nil
}

func (r *GalleryRepository) List(ctx context.Context, tag string) ([]model.GalleryImage, error) {
	query := r.db.WithContext(ctx).Model(&model.GalleryImage{}).Order("created_at DESC").Order("id DESC")
	if tag != "" {
		// tags 以 JSON 文本存储，先粗筛再精确过滤
		query = query.Where("tags LIKE ?", `%"`+tag+`"%`)
	}

	var images []model.GalleryImage
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	if tag == "" {
		return images, nil
	}

	filtered := make([]model.GalleryImage, 0, len(images))
	for _, img := range images {
		if slices.Contains(img.Tags, tag) {
			filtered = append(filtered, img)
		}
	}
	return filtered, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id string, update GalleryUpdate) (*model.GalleryImage, error) {
	if update.isEmpty() {
		return r.FindByID(ctx, id)
	}

	values := &model.GalleryImage{}
	columns := []string{"updated_at"}
	if update.Title != nil {
		values.Title = *update.Title
		columns = append(columns, "title")
	}
	if update.Description != nil {
		values.Description = *update.Description
		columns = append(columns, "description")
	}
	if update.Tags != nil {
		values.Tags = update.Tags
		columns = append(columns, "tags")
	}

	var image model.GalleryImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.GalleryImage{}).Where("id = ?", id).Select(columns).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		return tx.First(&image, "id = ?", id).Error
	})
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &image, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryImage{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return db.ErrNotFound
	}
	return nil
}
