package upload

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	platformservice "portal-berita-server/internal/platform/service"
	"strings"

	_ "golang.org/x/image/webp"
)

// DefaultMaxSizeMB 未配置时的单文件上限
const DefaultMaxSizeMB = 10

var allowedTypes = map[string]map[string]bool{
	"image/jpeg": {".jpg": true, ".jpeg": true},
	"image/png":  {".png": true},
	"image/webp": {".webp": true},
}

// ImageInfo 校验通过的图片元信息
type ImageInfo struct {
	Ext         string
	ContentType string
	Width       int
	Height      int
}

// ValidateImageFile 校验上传图片的大小、扩展名、真实类型与文件头。
// 所有拒绝都返回 ValidationError，调用方在此之前不得访问远端图床。
func ValidateImageFile(file *multipart.FileHeader, maxSizeMB int) (*ImageInfo, error) {
	if file == nil {
		return nil, platformservice.NewValidationError("请选择要上传的图片", "image: required")
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if file.Size > int64(maxSizeMB)*1024*1024 {
		return nil, platformservice.NewValidationError(
			fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB), "image: too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedExt(ext) {
		return nil, platformservice.NewValidationError(
			"只支持 jpeg、jpg、png、webp 格式的图片", "image: unsupported extension "+ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, platformservice.NewValidationError("无法读取上传的文件")
	}
	defer func() { _ = src.Close() }()

	return inspect(src, ext)
}

func isAllowedExt(ext string) bool {
	for _, exts := range allowedTypes {
		if exts[ext] {
			return true
		}
	}
	return false
}

// inspect 嗅探真实类型并解析图片头，获取宽高
func inspect(r io.ReadSeeker, ext string) (*ImageInfo, error) {
	buffer := make([]byte, 512)
	n, err := r.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, platformservice.NewValidationError("读取文件内容失败")
	}
	contentType := http.DetectContentType(buffer[:n])

	if exts, ok := allowedTypes[contentType]; !ok || !exts[ext] {
		return nil, platformservice.NewValidationError(
			"文件真实类型("+contentType+")与扩展名("+ext+")不匹配或不支持",
			"image: content type mismatch")
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, platformservice.NewValidationError("重置文件读取位置失败")
	}

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, platformservice.NewValidationError("图片文件已损坏或无法解析", "image: "+err.Error())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, platformservice.NewValidationError("图片尺寸无效")
	}

	return &ImageInfo{
		Ext:         ext,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
