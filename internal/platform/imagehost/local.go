package imagehost

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"portal-berita-server/internal/utils"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalHost 将图片存储在本地磁盘，按日期分目录，由静态路由对外提供访问
type LocalHost struct {
	root      string
	urlPrefix string
}

func NewLocalHost(root, urlPrefix string) *LocalHost {
	if root == "" {
		root = "uploads/gallery"
	}
	if urlPrefix == "" {
		urlPrefix = "/imgs/"
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalHost{root: root, urlPrefix: urlPrefix}
}

// Root 返回本地存储根目录。
func (h *LocalHost) Root() string { return h.root }

// URLPrefix 返回对外访问前缀。
func (h *LocalHost) URLPrefix() string { return h.urlPrefix }

func (h *LocalHost) Upload(ctx context.Context, localPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	assetID := uuid.New().String()
	relativePath := filepath.ToSlash(filepath.Join(
		now.Format("2006"), now.Format("01"), now.Format("02"),
		assetID+strings.ToLower(filepath.Ext(localPath)),
	))

	dst, err := utils.SecureJoin(h.root, filepath.FromSlash(relativePath))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, fmt.Errorf("无法创建存储目录: %w", err)
	}

	if err := copyFile(localPath, dst); err != nil {
		_ = os.Remove(dst)
		return nil, err
	}

	return &Result{
		SecureURL: h.urlPrefix + relativePath,
		AssetID:   assetID,
		PublicID:  relativePath,
	}, nil
}

func (h *LocalHost) Destroy(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := utils.SecureJoin(h.root, filepath.FromSlash(publicID))
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("无法读取暂存文件: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("无法创建文件: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("文件保存失败: %w", err)
	}
	return out.Close()
}
