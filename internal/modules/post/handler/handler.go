package handler

import postservice "portal-berita-server/internal/modules/post/service"

type Handler struct {
	postService *postservice.Service
}

func New(postService *postservice.Service) *Handler {
	return &Handler{postService: postService}
}
