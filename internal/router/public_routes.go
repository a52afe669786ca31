package router

import (
	"context"
	"log"
	"net/http"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"time"

	"github.com/gin-gonic/gin"
)

func registerHealthRoutes(r *gin.Engine, handles *db.Handles) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := handles.Ping(ctx); err != nil {
			log.Printf("⚠️ 健康检查失败: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": "up",
			"version":  consts.ApplicationVersion,
		})
	})
}
