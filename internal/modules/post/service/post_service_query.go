package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	moduledto "portal-berita-server/internal/modules/post/dto"
	"portal-berita-server/internal/modules/post/repo"
	platformservice "portal-berita-server/internal/platform/service"
)

// ListKind 三类带缓存的文章列表
type ListKind string

const (
	ListAll      ListKind = consts.CacheKeyAllPosts
	ListFeatured ListKind = consts.CacheKeyFeaturedPosts
	ListLatest   ListKind = consts.CacheKeyLatestPosts
)

// NormalizePagination 归一化分页参数，limit 为 0 时使用该列表的默认值
func NormalizePagination(kind ListKind, page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
		if kind == ListFeatured {
			limit = DefaultFeaturedLimit
		}
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ListPosts 分页查询文章列表。
// 先查缓存，命中时不访问数据库；未命中则查库并回填。缓存故障只降级，不影响请求。
// 第二个返回值表示是否命中缓存。
func (s *Service) ListPosts(ctx context.Context, kind ListKind, page, limit int) (*moduledto.PostListResponse, bool, error) {
	page, limit = NormalizePagination(kind, page, limit)
	field := fmt.Sprintf("%d:%d", page, limit)

	if cached, ok := s.readCache(ctx, kind, field); ok {
		return cached, true, nil
	}

	query := repo.ListQuery{
		FeaturedOnly: kind == ListFeatured,
		NewestFirst:  kind == ListLatest,
		Skip:         (page - 1) * limit,
		Limit:        limit,
	}
	posts, total, err := s.postStore.List(ctx, query)
	if err != nil {
		log.Printf("❌ 查询文章列表失败(%s): %v", kind, err)
		return nil, false, platformservice.NewInternalError("获取文章列表失败")
	}

	resp := &moduledto.PostListResponse{
		Posts: posts,
		Total: total,
		Page:  page,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
	s.writeCache(ctx, kind, field, resp)
	return resp, false, nil
}

func (s *Service) readCache(ctx context.Context, kind ListKind, field string) (*moduledto.PostListResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	cacheCtx, cancel := cacheContext(ctx)
	defer cancel()

	raw, ok, err := s.cache.GetField(cacheCtx, string(kind), field)
	if err != nil {
		log.Printf("⚠️ 读取缓存失败(%s %s): %v", kind, field, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var resp moduledto.PostListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Printf("⚠️ 缓存数据损坏(%s %s): %v", kind, field, err)
		return nil, false
	}
	return &resp, true
}

func (s *Service) writeCache(ctx context.Context, kind ListKind, field string, resp *moduledto.PostListResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	cacheCtx, cancel := cacheContext(ctx)
	defer cancel()

	if err := s.cache.SetField(cacheCtx, string(kind), field, raw, cacheTTL()); err != nil {
		log.Printf("⚠️ 写入缓存失败(%s %s): %v", kind, field, err)
	}
}

// GetPost 获取文章详情并原子地增加一次浏览量
func (s *Service) GetPost(ctx context.Context, id string) (*model.Post, error) {
	if !model.IsValidID(id) {
		return nil, platformservice.NewValidationError("文章ID格式错误", "id: invalid")
	}

	post, err := s.postStore.IncrementViewCount(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewNotFoundError("文章不存在")
		}
		log.Printf("❌ 查询文章失败 %s: %v", id, err)
		return nil, platformservice.NewInternalError("获取文章失败")
	}
	return post, nil
}

// ListByCategory 按分类查询，分类不区分大小写但必须在固定集合内
func (s *Service) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	normalized := consts.NormalizeCategory(category)
	if !consts.IsValidCategory(normalized) {
		return nil, platformservice.NewValidationError("无效的分类", "category: "+category)
	}

	posts, err := s.postStore.ListByCategory(ctx, normalized)
	if err != nil {
		log.Printf("❌ 按分类查询文章失败 %s: %v", normalized, err)
		return nil, platformservice.NewInternalError("获取文章失败")
	}
	return posts, nil
}

// ListRelated 查询与给定分类有交集的文章
func (s *Service) ListRelated(ctx context.Context, req moduledto.RelatedPostsRequest) ([]model.Post, error) {
	var categories []string
	seen := make(map[string]struct{})
	for _, c := range req.Categories {
		normalized := consts.NormalizeCategory(c)
		if normalized == "" {
			continue
		}
		if !consts.IsValidCategory(normalized) {
			return nil, platformservice.NewValidationError("无效的分类", "categories: "+c)
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		categories = append(categories, normalized)
	}
	if len(categories) == 0 {
		return nil, platformservice.NewValidationError("请提供至少一个分类", "categories: required")
	}

	if req.ExcludeID != "" && !model.IsValidID(req.ExcludeID) {
		return nil, platformservice.NewValidationError("文章ID格式错误", "exclude: invalid")
	}

	limit := req.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	posts, err := s.postStore.ListRelated(ctx, categories, req.ExcludeID, limit)
	if err != nil {
		log.Printf("❌ 查询相关文章失败: %v", err)
		return nil, platformservice.NewInternalError("获取相关文章失败")
	}
	return posts, nil
}
