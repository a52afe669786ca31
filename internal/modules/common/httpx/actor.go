package httpx

import (
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// CurrentActor 读取认证中间件写入的用户 ID 与角色
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	id := c.GetString(consts.ContextUserID)
	if id == "" {
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: c.GetString(consts.ContextRole)}, true
}
