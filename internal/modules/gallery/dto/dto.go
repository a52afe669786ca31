package dto

import "encoding/json"

// UploadRequest multipart 表单字段，文件本身单独读取
type UploadRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	// Tags 为序列化后的 JSON 数组，或逗号分隔列表
	Tags string `form:"tags"`
}

// UpdateRequest 部分更新；Tags 可以是 JSON 数组，也可以是序列化后的数组字符串
type UpdateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}
