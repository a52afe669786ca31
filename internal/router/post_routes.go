package router

import (
	"portal-berita-server/internal/middleware"
	posthandler "portal-berita-server/internal/modules/post/handler"

	"github.com/gin-gonic/gin"
)

func registerPostRoutes(api *gin.RouterGroup, h *posthandler.Handler) {
	posts := api.Group("/posts")
	posts.GET("", h.GetAllPosts)
	posts.GET("/featured", h.GetFeaturedPosts)
	posts.GET("/latest", h.GetLatestPosts)
	posts.GET("/category/:category", h.GetPostsByCategory)
	posts.GET("/related", h.GetRelatedPosts)
	posts.GET("/:id", h.GetPostByID)

	authed := posts.Group("", middleware.JWTAuth())
	authed.POST("", h.CreatePost)
	authed.PATCH("/:id", h.UpdatePost)
	authed.DELETE("/:id", h.DeletePost)
}
