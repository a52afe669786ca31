package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
)

// Stage 把上传文件写入临时目录，返回路径与清理函数。
// 调用方必须 defer cleanup()，无论后续是否成功。
func Stage(file *multipart.FileHeader, tempDir, ext string) (string, func(), error) {
	src, err := file.Open()
	if err != nil {
		return "", func() {}, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	if tempDir != "" {
		if err := os.MkdirAll(tempDir, 0755); err != nil {
			return "", func() {}, fmt.Errorf("create temp dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(tempDir, "gallery-*"+ext)
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️ 清理暂存文件失败 %s: %v", path, err)
		}
	}

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}
