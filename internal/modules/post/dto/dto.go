package dto

import "portal-berita-server/internal/model"

type CreatePostRequest struct {
	Title          string   `json:"title" binding:"required"`
	AuthorName     string   `json:"authorName" binding:"required"`
	ImageLink      string   `json:"imageLink" binding:"required"`
	Categories     []string `json:"categories" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	IsFeaturedPost bool     `json:"isFeaturedPost"`
}

// UpdatePostRequest 部分更新，未出现的字段保持不变
type UpdatePostRequest struct {
	Title          *string   `json:"title"`
	AuthorName     *string   `json:"authorName"`
	ImageLink      *string   `json:"imageLink"`
	Categories     *[]string `json:"categories"`
	Description    *string   `json:"description"`
	IsFeaturedPost *bool     `json:"isFeaturedPost"`
}

type PostListResponse struct {
	Posts []model.Post `json:"posts"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}

type RelatedPostsRequest struct {
	Categories []string
	ExcludeID  string
	Limit      int
}
