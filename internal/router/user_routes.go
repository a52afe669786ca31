package router

import (
	"portal-berita-server/internal/middleware"
	userhandler "portal-berita-server/internal/modules/user/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *userhandler.Handler) {
	authLimiter := middleware.RateLimitMiddleware(middleware.AuthRateLimit)

	users := api.Group("/users")
	users.POST("/signup", authLimiter, h.Signup)
	users.POST("/signin", authLimiter, h.Signin)
	users.POST("/signout", h.Signout)
	users.GET("/me", middleware.JWTAuth(), h.GetSelfInfo)
}
