package imagehost

import (
	"context"
	"fmt"
	"log"
	"portal-berita-server/internal/config"
	"strings"
)

// Result 远程图床返回的存储标识
type Result struct {
	SecureURL string
	AssetID   string
	PublicID  string
}

// Host 外部图片托管服务。
// Destroy 对已不存在的资源视为成功。
type Host interface {
	Upload(ctx context.Context, localPath string) (*Result, error)
	Destroy(ctx context.Context, publicID string) error
}

// New 按配置选择图床实现。
func New(cfg config.ImageHostConfig, upload config.UploadConfig) (Host, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "cloudinary":
		h, err := NewCloudinaryHost(cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("☁️ 图床: Cloudinary (folder=%s)", cfg.Folder)
		return h, nil
	case "", "local":
		log.Printf("📁 图床: 本地磁盘 (%s)", upload.Path)
		return NewLocalHost(upload.Path, upload.URLPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported image host provider: %s", cfg.Provider)
	}
}
