package httpx

import (
	"log"
	"net/http"
	"portal-berita-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// WriteServiceError 将业务错误翻译为统一的错误响应。
// 非 ServiceError 视为内部错误：记录详细日志，对外只返回 fallbackMessage。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		Error(c, status, serviceErr.Message, serviceErr.Errors...)
		return
	}
	log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	Error(c, http.StatusInternalServerError, fallbackMessage)
}

func serviceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeConflict:
		return http.StatusConflict
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case service.ErrorCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
