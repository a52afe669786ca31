package router

import (
	"portal-berita-server/internal/middleware"
	galleryhandler "portal-berita-server/internal/modules/gallery/handler"

	"github.com/gin-gonic/gin"
)

func registerGalleryRoutes(api *gin.RouterGroup, h *galleryhandler.Handler) {
	gallery := api.Group("/gallery")
	gallery.GET("", h.ListImages)
	gallery.GET("/:id", h.GetImage)

	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimit)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware()

	authed := gallery.Group("", middleware.JWTAuth())
	authed.POST("/upload", uploadBodyLimit, uploadLimiter, h.UploadImage)
	authed.PATCH("/:id", h.UpdateImage)
	authed.DELETE("/:id", h.DeleteImage)
}
