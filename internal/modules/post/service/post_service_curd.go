package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	moduledto "portal-berita-server/internal/modules/post/dto"
	"portal-berita-server/internal/modules/post/repo"
	"portal-berita-server/internal/platform/cache"
	platformservice "portal-berita-server/internal/platform/service"
	"portal-berita-server/internal/utils"
	"slices"
	"strings"
	"time"
)

// CreatePost 创建文章并关联到作者，成功后失效列表缓存
func (s *Service) CreatePost(ctx context.Context, actor platformservice.Actor, req moduledto.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	authorName := strings.TrimSpace(req.AuthorName)
	imageLink := strings.TrimSpace(req.ImageLink)
	description := strings.TrimSpace(req.Description)

	var missing []string
	for field, value := range map[string]string{
		"title":       title,
		"authorName":  authorName,
		"imageLink":   imageLink,
		"description": description,
	} {
		if value == "" {
			missing = append(missing, field+": required")
		}
	}
	if len(req.Categories) == 0 {
		missing = append(missing, "categories: required")
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, platformservice.NewValidationError("请填写所有必填字段", missing...)
	}

	if !utils.IsImageLink(imageLink) {
		return nil, platformservice.NewValidationError("图片链接必须以 jpg、jpeg、png 或 webp 结尾", "imageLink: invalid")
	}
	categories, err := normalizeCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:             model.NewID(),
		Title:          title,
		AuthorName:     authorName,
		ImageLink:      imageLink,
		Description:    description,
		Categories:     categories,
		IsFeaturedPost: req.IsFeaturedPost,
		AuthorID:       actor.ID,
		TimeOfPost:     time.Now(),
	}
	if err := s.postStore.CreateAndAttachToAuthor(ctx, post); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewUnauthorizedError("作者账号不存在")
		}
		log.Printf("❌ 创建文章失败: %v", err)
		return nil, platformservice.NewInternalError("创建文章失败")
	}

	s.invalidatePostLists(ctx)
	return post, nil
}

// UpdatePost 部分更新文章，仅作者或管理员可操作
func (s *Service) UpdatePost(ctx context.Context, actor platformservice.Actor, id string, req moduledto.UpdatePostRequest) (*model.Post, error) {
	if !model.IsValidID(id) {
		return nil, platformservice.NewValidationError("文章ID格式错误", "id: invalid")
	}

	update, err := buildPostUpdate(req)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanManage(ctx, actor, id); err != nil {
		return nil, err
	}

	post, err := s.postStore.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewNotFoundError("文章不存在")
		}
		log.Printf("❌ 更新文章失败 %s: %v", id, err)
		return nil, platformservice.NewInternalError("更新文章失败")
	}

	s.invalidatePostLists(ctx)
	return post, nil
}

// DeletePost 删除文章并从作者 posts 中移除，仅作者或管理员可操作
func (s *Service) DeletePost(ctx context.Context, actor platformservice.Actor, id string) error {
	if !model.IsValidID(id) {
		return platformservice.NewValidationError("文章ID格式错误", "id: invalid")
	}
	if err := s.ensureCanManage(ctx, actor, id); err != nil {
		return err
	}

	post, err := s.postStore.DeleteAndDetachFromAuthor(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrAuthorDetach) && post != nil:
		// 文章已删除，残留的作者引用只记录日志
		log.Printf("❌ 文章 %s 已删除，但移除作者 %s 的引用失败: %v", id, post.AuthorID, err)
	case errors.Is(err, db.ErrNotFound):
		return platformservice.NewNotFoundError("文章不存在")
	default:
		log.Printf("❌ 删除文章失败 %s: %v", id, err)
		return platformservice.NewInternalError("删除文章失败")
	}

	s.invalidatePostLists(ctx)
	return nil
}

func (s *Service) ensureCanManage(ctx context.Context, actor platformservice.Actor, id string) error {
	existing, err := s.postStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platformservice.NewNotFoundError("文章不存在")
		}
		log.Printf("❌ 查询文章失败 %s: %v", id, err)
		return platformservice.NewInternalError("查询文章失败")
	}
	if !actor.CanManage(existing.AuthorID) {
		return platformservice.NewForbiddenError("无权操作该文章")
	}
	return nil
}

// invalidatePostLists 失效三类列表缓存。
// 重试耗尽后记录错误并继续，过期时间兜底。
func (s *Service) invalidatePostLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys := consts.PostListCacheKeys()
	if err := cache.Invalidate(context.WithoutCancel(ctx), s.cache, invalidateRetries(), keys...); err != nil {
		log.Printf("❌ 文章列表缓存失效失败，最长 %s 后过期 keys=%v: %v", cacheTTL(), keys, err)
	}
}

func buildPostUpdate(req moduledto.UpdatePostRequest) (repo.PostUpdate, error) {
	var update repo.PostUpdate

	trimmedRequired := func(field string, value *string) (*string, error) {
		if value == nil {
			return nil, nil
		}
		v := strings.TrimSpace(*value)
		if v == "" {
			return nil, platformservice.NewValidationError(field+" 不能为空", field+": required")
		}
		return &v, nil
	}

	var err error
	if update.Title, err = trimmedRequired("title", req.Title); err != nil {
		return update, err
	}
	if update.AuthorName, err = trimmedRequired("authorName", req.AuthorName); err != nil {
		return update, err
	}
	if update.Description, err = trimmedRequired("description", req.Description); err != nil {
		return update, err
	}
	if update.ImageLink, err = trimmedRequired("imageLink", req.ImageLink); err != nil {
		return update, err
	}
	if update.ImageLink != nil && !utils.IsImageLink(*update.ImageLink) {
		return update, platformservice.NewValidationError("图片链接必须以 jpg、jpeg、png 或 webp 结尾", "imageLink: invalid")
	}
	if req.Categories != nil {
		if update.Categories, err = normalizeCategories(*req.Categories); err != nil {
			return update, err
		}
	}
	update.IsFeaturedPost = req.IsFeaturedPost
	return update, nil
}

// normalizeCategories 统一小写并去重，数量必须在 1 到 MaxPostCategories 之间
func normalizeCategories(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		normalized := consts.NormalizeCategory(c)
		if !consts.IsValidCategory(normalized) {
			return nil, platformservice.NewValidationError("无效的分类: "+c, "categories: invalid "+c)
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		categories = append(categories, normalized)
	}

	if len(categories) == 0 {
		return nil, platformservice.NewValidationError("至少需要一个分类", "categories: required")
	}
	if len(categories) > consts.MaxPostCategories {
		return nil, platformservice.NewValidationError(fmt.Sprintf("分类最多 %d 个", consts.MaxPostCategories), "categories: too many")
	}
	return categories, nil
}
