package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	platformservice "portal-berita-server/internal/platform/service"
	"strings"
)

// ParseTags 解析表单中的标签：以 '[' 开头按 JSON 数组解析，否则按逗号分隔。
// 结果去除空白与重复项。
func ParseTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, platformservice.NewValidationError("标签格式错误", "tags: invalid json array")
		}
	} else {
		items = strings.Split(raw, ",")
	}
	return normalizeTags(items)
}

// parseTagsField 解析更新请求中的 tags；未提供或为 null 时返回 nil 表示不修改
func parseTagsField(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, platformservice.NewValidationError("标签格式错误", "tags: invalid json array")
		}
		return normalizeTags(items)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, platformservice.NewValidationError("标签格式错误", "tags: invalid string")
		}
		return ParseTags(s)
	default:
		return nil, platformservice.NewValidationError("标签格式错误", "tags: must be array or string")
	}
}

func normalizeTags(items []string) ([]string, error) {
	seen := make(map[string]struct{}, len(items))
	tags := make([]string, 0, len(items))
	for _, item := range items {
		tag := strings.TrimSpace(item)
		if tag == "" {
			continue
		}
		if len([]rune(tag)) > MaxTagLength {
			return nil, platformservice.NewValidationError(
				fmt.Sprintf("单个标签最多 %d 个字符", MaxTagLength), "tags: too long")
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	if len(tags) > MaxTags {
		return nil, platformservice.NewValidationError(
			fmt.Sprintf("标签最多 %d 个", MaxTags), "tags: too many")
	}
	return tags, nil
}
