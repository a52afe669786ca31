package dto

import "portal-berita-server/internal/model"

type SignupRequest struct {
	UserName string `json:"userName" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninRequest struct {
	UserNameOrEmail string `json:"userNameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type SigninResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// CreateAdminRequest 命令行创建管理员
type CreateAdminRequest struct {
	UserName string
	FullName string
	Email    string
	Password string
}
