package imagehosttest

import (
	"context"
	"os"
	"path/filepath"
	"portal-berita-server/internal/platform/imagehost"
	"sync"
)

// FakeHost 记录调用次数的内存图床
type FakeHost struct {
	mu         sync.Mutex
	UploadErr  error
	DestroyErr error
	Uploads    int
	Destroyed  []string
	// StagedSeen 上传时暂存文件是否存在
	StagedSeen []bool
	// StagedPaths 上传时收到的暂存路径
	StagedPaths []string
}

func (h *FakeHost) Upload(_ context.Context, localPath string) (*imagehost.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Uploads++
	_, statErr := os.Stat(localPath)
	h.StagedSeen = append(h.StagedSeen, statErr == nil)
	h.StagedPaths = append(h.StagedPaths, localPath)
	if h.UploadErr != nil {
		return nil, h.UploadErr
	}
	name := filepath.Base(localPath)
	return &imagehost.Result{
		SecureURL: "https://res.example/gallery/" + name,
		AssetID:   "asset-" + name,
		PublicID:  "gallery/" + name,
	}, nil
}

func (h *FakeHost) Destroy(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.DestroyErr != nil {
		return h.DestroyErr
	}
	h.Destroyed = append(h.Destroyed, publicID)
	return nil
}

// Calls 返回上传与删除次数
func (h *FakeHost) Calls() (uploads, destroys int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Uploads, len(h.Destroyed)
}
