package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"portal-berita-server/internal/config"
	"portal-berita-server/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// 测试内容：验证使用 sqlite 临时文件打开数据库并创建核心表。
func TestOpen_SQLiteTempFile(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "db", "test.db")

	handles, err := Open(context.Background(), config.DatabaseConfig{Type: "sqlite", Filename: dbFile})
	if err != nil {
		t.Fatalf("打开数据库失败: %v", err)
	}
	defer func() { _ = handles.Close(context.Background()) }()

	if handles.SQL == nil || handles.Mongo != nil {
		t.Fatalf("期望仅 SQL 句柄被初始化")
	}
	for _, table := range []any{&model.User{}, &model.Post{}, &model.GalleryImage{}} {
		if !handles.SQL.Migrator().HasTable(table) {
			t.Fatalf("期望表已创建: %T", table)
		}
	}
}

// 测试内容：验证 nil 句柄关闭不报错。
func TestHandlesClose_Nil(t *testing.T) {
	var h *Handles
	if err := h.Close(context.Background()); err != nil {
		t.Fatalf("期望为 nil，实际为 %v", err)
	}
}

// 测试内容：验证驱动错误被归一化为存储层错误。
func TestTranslateError(t *testing.T) {
	if TranslateError(nil) != nil {
		t.Fatalf("nil 应保持为 nil")
	}
	if !errors.Is(TranslateError(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Fatalf("gorm 未找到应转换为 ErrNotFound")
	}
	if !errors.Is(TranslateError(mongo.ErrNoDocuments), ErrNotFound) {
		t.Fatalf("mongo 未找到应转换为 ErrNotFound")
	}
	if !errors.Is(TranslateError(gorm.ErrDuplicatedKey), ErrDuplicateKey) {
		t.Fatalf("gorm 重复键应转换为 ErrDuplicateKey")
	}
	other := errors.New("boom")
	if TranslateError(other) != other {
		t.Fatalf("其它错误应原样返回")
	}
}
