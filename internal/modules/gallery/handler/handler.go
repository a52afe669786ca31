package handler

import galleryservice "portal-berita-server/internal/modules/gallery/service"

type Handler struct {
	galleryService *galleryservice.Service
}

func New(galleryService *galleryservice.Service) *Handler {
	return &Handler{galleryService: galleryService}
}
