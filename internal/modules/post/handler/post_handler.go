package handler

import (
	"net/http"
	"portal-berita-server/internal/modules/common/httpx"
	moduledto "portal-berita-server/internal/modules/post/dto"
	postservice "portal-berita-server/internal/modules/post/service"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const cacheHeader = "X-Cache"

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) listPosts(c *gin.Context, kind postservice.ListKind) {
	resp, hit, err := h.postService.ListPosts(c.Request.Context(), kind, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取文章列表失败")
		return
	}

	if hit {
		c.Header(cacheHeader, "HIT")
	} else {
		c.Header(cacheHeader, "MISS")
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllPosts 按插入顺序分页
func (h *Handler) GetAllPosts(c *gin.Context) {
	h.listPosts(c, postservice.ListAll)
}

func (h *Handler) GetFeaturedPosts(c *gin.Context) {
	h.listPosts(c, postservice.ListFeatured)
}

func (h *Handler) GetLatestPosts(c *gin.Context) {
	h.listPosts(c, postservice.ListLatest)
}

// GetPostByID 获取文章详情（浏览量 +1）
func (h *Handler) GetPostByID(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取文章失败")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetPostsByCategory(c *gin.Context) {
	posts, err := h.postService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取文章失败")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetRelatedPosts categories 支持逗号分隔或重复参数
func (h *Handler) GetRelatedPosts(c *gin.Context) {
	var categories []string
	for _, raw := range c.QueryArray("categories") {
		categories = append(categories, strings.Split(raw, ",")...)
	}

	posts, err := h.postService.ListRelated(c.Request.Context(), moduledto.RelatedPostsRequest{
		Categories: categories,
		ExcludeID:  strings.TrimSpace(c.Query("exclude")),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "获取相关文章失败")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) CreatePost(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	var req moduledto.CreatePostRequest
	if err := httpx.BindJSONStrict(c, &req); err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), actor, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建文章失败")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	var req moduledto.UpdatePostRequest
	if err := httpx.BindJSONStrict(c, &req); err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新文章失败")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), actor, c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "删除文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}
