package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"portal-berita-server/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSONStrict 解析 JSON 请求体，拒绝未知字段，再执行 binding 标签校验。
// 超出请求体限制时返回 TooLarge，其余错误转换为 ValidationError。
func BindJSONStrict(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return service.NewValidationError("请求体不能为空")
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return service.NewValidationError("请求体不能为空")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.NewTooLargeError("请求体过大")
		}
		return service.NewValidationError("请求参数错误", err.Error())
	}
	if decoder.More() {
		return service.NewValidationError("请求参数错误", "body: unexpected trailing data")
	}

	if binding.Validator == nil {
		return nil
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return service.NewValidationError("请求参数错误", fmt.Sprint(err))
	}
	return nil
}
