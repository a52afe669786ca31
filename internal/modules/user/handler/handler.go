package handler

import userservice "portal-berita-server/internal/modules/user/service"

type Handler struct {
	userService *userservice.Service
}

func New(userService *userservice.Service) *Handler {
	return &Handler{userService: userService}
}
