package imagehost

import (
	"context"
	"errors"
	"fmt"
	"portal-berita-server/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryHost(cfg config.ImageHostConfig) (*CloudinaryHost, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
			return nil, errors.New("cloudinary credentials are not configured")
		}
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "gallery"
	}
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

func (h *CloudinaryHost) Upload(ctx context.Context, localPath string) (*Result, error) {
	resp, err := h.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       h.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" || resp.PublicID == "" {
		return nil, errors.New("cloudinary upload: empty response")
	}

	return &Result{
		SecureURL: resp.SecureURL,
		AssetID:   resp.AssetID,
		PublicID:  resp.PublicID,
	}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	resp, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Error.Message)
	}
	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("cloudinary destroy %s: unexpected result %q", publicID, resp.Result)
	}
}
