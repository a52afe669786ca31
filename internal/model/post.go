package model

import (
	"slices"
	"time"
)

type Post struct {
	ID             string    `json:"_id" gorm:"primaryKey;size:24"`
	Title          string    `json:"title" gorm:"not null"`
	AuthorName     string    `json:"authorName" gorm:"not null"`
	ImageLink      string    `json:"imageLink" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text;not null"`
	Categories     []string  `json:"categories" gorm:"type:text;serializer:json"`
	IsFeaturedPost bool      `json:"isFeaturedPost" gorm:"not null;index"`
	AuthorID       string    `json:"authorId" gorm:"size:24;not null;index"`
	ViewCount      int64     `json:"viewCount" gorm:"not null;default:0"`
	TimeOfPost     time.Time `json:"timeOfPost" gorm:"not null;index"`
}

// HasCategory 判断文章是否属于指定分类
func (p *Post) HasCategory(category string) bool {
	return slices.Contains(p.Categories, category)
}
