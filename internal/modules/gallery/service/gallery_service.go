package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	moduledto "portal-berita-server/internal/modules/gallery/dto"
	"portal-berita-server/internal/modules/gallery/repo"
	platformservice "portal-berita-server/internal/platform/service"
	"portal-berita-server/internal/platform/upload"
	"strings"
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", platformservice.NewValidationError("标题不能为空", "title: required")
	}
	if len([]rune(title)) > MaxTitleLength {
		return "", platformservice.NewValidationError(
			fmt.Sprintf("标题最多 %d 个字符", MaxTitleLength), "title: too long")
	}
	return title, nil
}

func (s *Service) ListImages(ctx context.Context, tag string) ([]model.GalleryImage, error) {
	images, err := s.galleryStore.List(ctx, strings.TrimSpace(tag))
	if err != nil {
		log.Printf("❌ 获取图库列表失败: %v", err)
		return nil, platformservice.NewInternalError("获取图库失败")
	}
	if images == nil {
		images = []model.GalleryImage{}
	}
	return images, nil
}

func (s *Service) GetImage(ctx context.Context, id string) (*model.GalleryImage, error) {
	if !model.IsValidID(id) {
		return nil, platformservice.NewValidationError("图片ID格式错误", "id: invalid")
	}
	img, err := s.galleryStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewNotFoundError("图片不存在")
		}
		return nil, platformservice.NewInternalError("获取图片失败")
	}
	return img, nil
}

// UploadImage 校验、暂存并上传到远程图床，成功后才写入记录。
// 写库失败时删除刚上传的远程资源。
func (s *Service) UploadImage(ctx context.Context, actor platformservice.Actor, file *multipart.FileHeader, req moduledto.UploadRequest) (*model.GalleryImage, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	tags, err := ParseTags(req.Tags)
	if err != nil {
		return nil, err
	}

	cfg := config.Get()
	info, err := upload.ValidateImageFile(file, cfg.Upload.MaxSizeMB)
	if err != nil {
		return nil, err
	}

	stagedPath, cleanup, err := upload.Stage(file, cfg.Upload.TempDir, info.Ext)
	if err != nil {
		log.Printf("❌ 暂存上传文件失败: %v", err)
		return nil, platformservice.NewInternalError("保存上传文件失败")
	}
	defer cleanup()

	hostCtx, cancel := context.WithTimeout(ctx, hostTimeout())
	result, err := s.host.Upload(hostCtx, stagedPath)
	cancel()
	if err != nil {
		log.Printf("❌ 上传远程图床失败: %v", err)
		return nil, platformservice.NewUpstreamError("图片上传失败，请稍后重试", err)
	}

	img := &model.GalleryImage{
		ID:           model.NewID(),
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		ImageURL:     result.SecureURL,
		CloudinaryID: result.AssetID,
		PublicID:     result.PublicID,
		UploadedBy:   actor.ID,
		Tags:         tags,
		Width:        info.Width,
		Height:       info.Height,
	}
	if err := s.galleryStore.Create(ctx, img); err != nil {
		log.Printf("❌ 保存图库记录失败，回收远程资源 %s: %v", result.PublicID, err)
		s.destroyQuietly(ctx, result.PublicID)
		return nil, platformservice.NewInternalError("保存图片信息失败")
	}
	return img, nil
}

func (s *Service) destroyQuietly(ctx context.Context, publicID string) {
	destroyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hostTimeout())
	defer cancel()
	if err := s.host.Destroy(destroyCtx, publicID); err != nil {
		log.Printf("❌ 回收远程资源 %s 失败: %v", publicID, err)
	}
}

// UpdateImage 仅上传者本人可修改
func (s *Service) UpdateImage(ctx context.Context, actor platformservice.Actor, id string, req moduledto.UpdateRequest) (*model.GalleryImage, error) {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if img.UploadedBy != actor.ID {
		return nil, platformservice.NewForbiddenError("无权修改该图片")
	}

	var update repo.GalleryUpdate
	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		update.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		update.Description = &description
	}
	if update.Tags, err = parseTagsField(req.Tags); err != nil {
		return nil, err
	}

	updated, err := s.galleryStore.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewNotFoundError("图片不存在")
		}
		log.Printf("❌ 更新图片 %s 失败: %v", id, err)
		return nil, platformservice.NewInternalError("更新图片失败")
	}
	return updated, nil
}

// DeleteImage 上传者或管理员可删除。先删除远程资源，失败时保留记录。
func (s *Service) DeleteImage(ctx context.Context, actor platformservice.Actor, id string) error {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(img.UploadedBy) {
		return platformservice.NewForbiddenError("无权删除该图片")
	}

	hostCtx, cancel := context.WithTimeout(ctx, hostTimeout())
	err = s.host.Destroy(hostCtx, img.PublicID)
	cancel()
	if err != nil {
		log.Printf("❌ 删除远程资源 %s 失败: %v", img.PublicID, err)
		return platformservice.NewUpstreamError("删除远程图片失败，请稍后重试", err)
	}

	if err := s.galleryStore.Delete(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platformservice.NewNotFoundError("图片不存在")
		}
		log.Printf("❌ 删除图库记录 %s 失败: %v", id, err)
		return platformservice.NewInternalError("删除图片失败")
	}
	return nil
}
