package httpx

import "github.com/gin-gonic/gin"

// SuccessResponse 成功响应结构
type SuccessResponse struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorResponse 错误响应结构，data 恒为 null
type ErrorResponse struct {
	Status  int      `json:"status"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, SuccessResponse{Status: status, Data: data, Message: message, Success: true})
}

func Error(c *gin.Context, status int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	c.JSON(status, ErrorResponse{Status: status, Message: message, Errors: details})
}

// AbortWithError 用于中间件：写出错误响应并中断后续处理
func AbortWithError(c *gin.Context, status int, message string) {
	Error(c, status, message)
	c.Abort()
}
