package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"portal-berita-server/internal/model"
	"portal-berita-server/internal/testutils"
)

func mustUpload(t *testing.T, r http.Handler, userID, title, tags string) model.GalleryImage {
	t.Helper()
	body, ct := uploadForm(t, map[string]string{"title": title, "tags": tags}, "foto.png", testutils.SamplePNG(4, 4))
	w, env := perform(r, http.MethodPost, "/api/gallery/upload", body, ct, asUser(userID))
	if w.Code != http.StatusCreated || !env.Success || env.Status != http.StatusCreated {
		t.Fatalf("上传失败: %d %s", w.Code, w.Body.String())
	}
	var img model.GalleryImage
	if err := json.Unmarshal(env.Data, &img); err != nil {
		t.Fatalf("解析 data 失败: %v", err)
	}
	return img
}

// 测试内容：验证上传返回 201 信封，列表与详情可读取，标签过滤生效。
func TestGalleryHandler_UploadListGet(t *testing.T) {
	r, host := setupRouter(t)
	owner := model.NewID()

	img := mustUpload(t, r, owner, "Pantai", `["beach"]`)
	mustUpload(t, r, owner, "Kota", "city,night")
	if uploads, _ := host.Calls(); uploads != 2 {
		t.Fatalf("期望上传 2 次，实际为 %d", uploads)
	}
	if img.UploadedBy != owner || img.PublicID == "" {
		t.Fatalf("非预期记录: %+v", img)
	}

	w, env := perform(r, http.MethodGet, "/api/gallery", nil, "", nil)
	var list []model.GalleryImage
	_ = json.Unmarshal(env.Data, &list)
	if w.Code != http.StatusOK || len(list) != 2 {
		t.Fatalf("期望 2 张，实际为 %d (%d)", len(list), w.Code)
	}

	_, env = perform(r, http.MethodGet, "/api/gallery?tag=night", nil, "", nil)
	_ = json.Unmarshal(env.Data, &list)
	if len(list) != 1 || list[0].Title != "Kota" {
		t.Fatalf("标签过滤失败: %+v", list)
	}

	w, env = perform(r, http.MethodGet, "/api/gallery/"+img.ID, nil, "", nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), img.ID) {
		t.Fatalf("详情失败: %d %s", w.Code, w.Body.String())
	}

	w, env = perform(r, http.MethodGet, "/api/gallery/"+model.NewID(), nil, "", nil)
	if w.Code != http.StatusNotFound || env.Success || string(env.Data) != "null" || env.Errors == nil {
		t.Fatalf("期望 404 错误信封: %d %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证未登录、缺少文件、非图片文件均被拒绝且不访问图床。
func TestGalleryHandler_UploadRejects(t *testing.T) {
	r, host := setupRouter(t)
	owner := model.NewID()

	body, ct := uploadForm(t, map[string]string{"title": "x"}, "foto.png", testutils.SamplePNG(2, 2))
	if w, _ := perform(r, http.MethodPost, "/api/gallery/upload", body, ct, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}

	body, ct = uploadForm(t, map[string]string{"title": "x"}, "", nil)
	if w, _ := perform(r, http.MethodPost, "/api/gallery/upload", body, ct, asUser(owner)); w.Code != http.StatusBadRequest {
		t.Fatalf("期望缺少文件 400，实际为 %d", w.Code)
	}

	body, ct = uploadForm(t, map[string]string{"title": "x"}, "doc.pdf", []byte("%PDF-1.4"))
	w, env := perform(r, http.MethodPost, "/api/gallery/upload", body, ct, asUser(owner))
	if w.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("期望非图片 400，实际为 %d", w.Code)
	}

	if w, _ := perform(r, http.MethodPost, "/api/gallery/upload", strings.NewReader(`{"title":"x"}`), "application/json", asUser(owner)); w.Code != http.StatusBadRequest {
		t.Fatalf("期望非 multipart 请求 400，实际为 %d", w.Code)
	}

	if uploads, _ := host.Calls(); uploads != 0 {
		t.Fatalf("期望未访问图床，实际为 %d", uploads)
	}
}

// 测试内容：验证图床失败返回 502 错误信封。
func TestGalleryHandler_UploadHostFailure(t *testing.T) {
	r, host := setupRouter(t)
	host.UploadErr = errors.New("boom")

	body, ct := uploadForm(t, map[string]string{"title": "x"}, "foto.png", testutils.SamplePNG(2, 2))
	w, env := perform(r, http.MethodPost, "/api/gallery/upload", body, ct, asUser(model.NewID()))
	if w.Code != http.StatusBadGateway || env.Success {
		t.Fatalf("期望 502，实际为 %d", w.Code)
	}
}

// 测试内容：验证更新仅限上传者，tags 支持数组与序列化字符串，未知字段被拒绝。
func TestGalleryHandler_Update(t *testing.T) {
	r, _ := setupRouter(t)
	owner := model.NewID()
	img := mustUpload(t, r, owner, "lama", "")

	if w, _ := perform(r, http.MethodPatch, "/api/gallery/"+img.ID, strings.NewReader(`{"title":"x"}`), "application/json", asUser(model.NewID())); w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}
	if w, _ := perform(r, http.MethodPatch, "/api/gallery/"+img.ID, strings.NewReader(`{"imageUrl":"x"}`), "application/json", asUser(owner)); w.Code != http.StatusBadRequest {
		t.Fatalf("期望未知字段 400，实际为 %d", w.Code)
	}

	w, env := perform(r, http.MethodPatch, "/api/gallery/"+img.ID, strings.NewReader(`{"title":"baru","tags":"[\"a\",\"b\"]"}`), "application/json", asUser(owner))
	var got model.GalleryImage
	_ = json.Unmarshal(env.Data, &got)
	if w.Code != http.StatusOK || got.Title != "baru" || len(got.Tags) != 2 {
		t.Fatalf("更新失败: %d %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证非上传者删除返回 403 且不触碰任何资源；上传者删除成功；远程失败返回 502。
func TestGalleryHandler_Delete(t *testing.T) {
	r, host := setupRouter(t)
	owner := model.NewID()
	img := mustUpload(t, r, owner, "hapus", "")

	if w, _ := perform(r, http.MethodDelete, "/api/gallery/"+img.ID, nil, "", asUser(model.NewID())); w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}
	if _, destroys := host.Calls(); destroys != 0 {
		t.Fatalf("期望未删除远程资源")
	}
	if w, _ := perform(r, http.MethodGet, "/api/gallery/"+img.ID, nil, "", nil); w.Code != http.StatusOK {
		t.Fatalf("期望记录仍存在，实际为 %d", w.Code)
	}

	host.DestroyErr = errors.New("down")
	if w, _ := perform(r, http.MethodDelete, "/api/gallery/"+img.ID, nil, "", asUser(owner)); w.Code != http.StatusBadGateway {
		t.Fatalf("期望 502，实际为 %d", w.Code)
	}
	host.DestroyErr = nil

	w, env := perform(r, http.MethodDelete, "/api/gallery/"+img.ID, nil, "", asAdmin(model.NewID()))
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("管理员删除失败: %d %s", w.Code, w.Body.String())
	}
	if w, _ := perform(r, http.MethodGet, "/api/gallery/"+img.ID, nil, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("期望删除后 404，实际为 %d", w.Code)
	}
}
