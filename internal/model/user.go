package model

import (
	"portal-berita-server/internal/consts"
	"time"
)

type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:24"`
	UserName  string    `json:"userName" gorm:"size:64;unique;not null"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email" gorm:"size:255;unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role" gorm:"size:16;not null"`
	Posts     []string  `json:"posts" gorm:"type:text;serializer:json"` // 拥有的文章 ID
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == consts.RoleAdmin
}
