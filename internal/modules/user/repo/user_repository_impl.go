package repo

import (
	"context"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, db.TranslateError(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUserNameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_name = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &user, nil
}

func (r *UserRepository) FieldExists(ctx context.Context, field UserField, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where(field.column()+" = ?", value).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.NewID()
	}
	return db.TranslateError(r.db.WithContext(ctx).Create(user).Error)
}
