package service

import (
	"errors"
	"fmt"
	"testing"
)

// 测试内容：验证包装后的业务错误仍可被识别，并保留上游原因。
func TestAsServiceError_Wrapped(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := fmt.Errorf("delete gallery: %w", NewUpstreamError("图床删除失败", cause))

	serviceErr, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("期望识别为 ServiceError")
	}
	if serviceErr.Code != ErrorCodeUpstream {
		t.Fatalf("期望 upstream，实际为 %s", serviceErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 errors.Is 命中原始错误")
	}
	if !IsCode(err, ErrorCodeUpstream) || IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("IsCode 判断错误")
	}
}

// 测试内容：验证校验错误携带字段明细。
func TestNewValidationError_Details(t *testing.T) {
	err := NewValidationError("参数错误", "title is required", "categories is required")
	serviceErr, _ := AsServiceError(err)
	if len(serviceErr.Errors) != 2 {
		t.Fatalf("期望 2 条明细，实际为 %v", serviceErr.Errors)
	}
	if err.Error() != "参数错误" {
		t.Fatalf("非预期错误文本: %q", err.Error())
	}
}

// 测试内容：验证所有者与管理员的管理权限判断。
func TestActor_CanManage(t *testing.T) {
	owner := Actor{ID: "a1", Role: "user"}
	other := Actor{ID: "b2", Role: "user"}
	admin := Actor{ID: "c3", Role: "admin"}
	anonymous := Actor{}

	if !owner.CanManage("a1") || other.CanManage("a1") || !admin.CanManage("a1") {
		t.Fatalf("所有权判断错误")
	}
	if anonymous.CanManage("") {
		t.Fatalf("匿名用户不应拥有管理权限")
	}
}
