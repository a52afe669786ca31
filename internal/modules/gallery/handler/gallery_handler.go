package handler

import (
	"errors"
	"net/http"
	"portal-berita-server/internal/modules/common/httpx"
	moduledto "portal-berita-server/internal/modules/gallery/dto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ListImages 支持 ?tag= 过滤
func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.galleryService.ListImages(c.Request.Context(), c.Query("tag"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图库失败")
		return
	}
	httpx.Success(c, http.StatusOK, images, "获取图库成功")
}

func (h *Handler) GetImage(c *gin.Context) {
	img, err := h.galleryService.GetImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图片失败")
		return
	}
	httpx.Success(c, http.StatusOK, img, "获取图片成功")
}

// UploadImage multipart 字段：image（文件）、title、description、tags
func (h *Handler) UploadImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	var req moduledto.UploadRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Error(c, http.StatusRequestEntityTooLarge, "上传文件过大")
			return
		}
		httpx.Error(c, http.StatusBadRequest, "请求格式错误，请使用 multipart/form-data 上传")
		return
	}

	file, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		httpx.Error(c, http.StatusBadRequest, "读取上传文件失败")
		return
	}

	img, err := h.galleryService.UploadImage(c.Request.Context(), actor, file, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "上传图片失败")
		return
	}
	httpx.Success(c, http.StatusCreated, img, "图片上传成功")
}

func (h *Handler) UpdateImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	var req moduledto.UpdateRequest
	if err := httpx.BindJSONStrict(c, &req); err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	img, err := h.galleryService.UpdateImage(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新图片失败")
		return
	}
	httpx.Success(c, http.StatusOK, img, "图片信息已更新")
}

func (h *Handler) DeleteImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	if err := h.galleryService.DeleteImage(c.Request.Context(), actor, c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "删除图片失败")
		return
	}
	httpx.Success(c, http.StatusOK, gin.H{}, "图片已删除")
}
