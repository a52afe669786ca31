package model

import "time"

// GalleryImage 图库图片，存储标识仅在远端上传成功后写入
type GalleryImage struct {
	ID           string    `json:"_id" gorm:"primaryKey;size:24"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl" gorm:"not null"`
	CloudinaryID string    `json:"cloudinaryId" gorm:"not null"`
	PublicID     string    `json:"publicId" gorm:"not null"`
	UploadedBy   string    `json:"uploadedBy" gorm:"size:24;not null;index"`
	Tags         []string  `json:"tags" gorm:"type:text;serializer:json"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
