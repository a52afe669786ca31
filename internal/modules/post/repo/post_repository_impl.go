package repo

import (
	"context"
	"errors"
	"fmt"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

// lockAuthor 在事务内加行锁读取作者，保证 posts 列表的读改写不被并发写覆盖
func lockAuthor(tx *gorm.DB, id string) (*model.User, error) {
	var author model.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// categoryPattern 分类以 JSON 数组文本存储，按带引号的元素匹配
func categoryPattern(category string) string {
	return fmt.Sprintf(`%%"%s"%%`, category)
}

func (r *PostRepository) CreateAndAttachToAuthor(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = model.NewID()
	}
	if post.TimeOfPost.IsZero() {
		post.TimeOfPost = time.Now()
	}

	return db.TranslateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := lockAuthor(tx, post.AuthorID)
		if err != nil {
			return err
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		author.Posts = append(author.Posts, post.ID)
		return tx.Model(author).Select("posts").Updates(author).Error
	}))
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, db.TranslateError(err)
	}
	return &post, nil
}

func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&post).Error
	})
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, q ListQuery) ([]model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})
	if q.FeaturedOnly {
		query = query.Where("is_featured_post = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.NewestFirst {
		query = query.Order("time_of_post DESC").Order("id DESC")
	} else {
		query = query.Order("id ASC")
	}

	posts := []model.Post{}
	if err := query.Offset(q.Skip).Limit(q.Limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	var candidates []model.Post
	err := r.db.WithContext(ctx).
		Where("categories LIKE ?", categoryPattern(category)).
		Order("time_of_post DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// LIKE 只做粗筛，最终以解码后的分类为准
	posts := make([]model.Post, 0, len(candidates))
	for _, p := range candidates {
		if p.HasCategory(category) {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *PostRepository) ListRelated(ctx context.Context, categories []string, excludeID string, limit int) ([]model.Post, error) {
	if len(categories) == 0 {
		return []model.Post{}, nil
	}

	cond := r.db.Where("categories LIKE ?", categoryPattern(categories[0]))
	for _, c := range categories[1:] {
		cond = cond.Or("categories LIKE ?", categoryPattern(c))
	}
	query := r.db.WithContext(ctx).Where(cond)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var candidates []model.Post
	if err := query.Order("time_of_post DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	posts := make([]model.Post, 0, min(limit, len(candidates)))
	for _, p := range candidates {
		if len(posts) >= limit {
			break
		}
		if slices.ContainsFunc(categories, p.HasCategory) {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, update PostUpdate) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values, columns := updateColumns(update)
		if len(columns) > 0 {
			// 只写入变更的列，view_count 等并发递增的列不参与覆盖
			err := tx.Model(&model.Post{}).Where("id = ?", id).Select(columns).Updates(values).Error
			if err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&post).Error
	})
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &post, nil
}

// updateColumns 把非 nil 字段放入待写结构体，并返回对应的列名
func updateColumns(update PostUpdate) (*model.Post, []string) {
	values := &model.Post{}
	var columns []string
	if update.Title != nil {
		values.Title = *update.Title
		columns = append(columns, "title")
	}
	if update.AuthorName != nil {
		values.AuthorName = *update.AuthorName
		columns = append(columns, "author_name")
	}
	if update.ImageLink != nil {
		values.ImageLink = *update.ImageLink
		columns = append(columns, "image_link")
	}
	if update.Description != nil {
		values.Description = *update.Description
		columns = append(columns, "description")
	}
	if update.Categories != nil {
		values.Categories = update.Categories
		columns = append(columns, "categories")
	}
	if update.IsFeaturedPost != nil {
		values.IsFeaturedPost = *update.IsFeaturedPost
		columns = append(columns, "is_featured_post")
	}
	return values, columns
}

func (r *PostRepository) DeleteAndDetachFromAuthor(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}

		author, err := lockAuthor(tx, post.AuthorID)
		if err != nil {
			// 作者已不存在时无需维护反向引用
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		author.Posts = slices.DeleteFunc(author.Posts, func(pid string) bool { return pid == id })
		return tx.Model(author).Select("posts").Updates(author).Error
	})
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &post, nil
}
