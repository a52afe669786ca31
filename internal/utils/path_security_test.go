package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// 测试内容：验证 SecureJoin 在基目录内拼接日期分层路径时返回合法路径。
func TestSecureJoin_AllowsWithinBase(t *testing.T) {
	base := t.TempDir()

	got, err := SecureJoin(base, filepath.Join("2026", "01", "02", "a.webp"))
	if err != nil {
		t.Fatalf("SecureJoin 返回错误: %v", err)
	}

	baseAbs, _ := filepath.Abs(base)
	if !strings.HasPrefix(got, baseAbs+string(os.PathSeparator)) {
		t.Fatalf("期望路径位于基目录下, got=%q base=%q", got, baseAbs)
	}
}

// 测试内容：验证 SecureJoin 拒绝绝对路径输入。
func TestSecureJoin_RejectsAbsoluteInput(t *testing.T) {
	base := t.TempDir()
	if _, err := SecureJoin(base, filepath.Join(base, "x.png")); err == nil {
		t.Fatalf("期望绝对路径返回错误")
	}
}

// 测试内容：验证 SecureJoin 拒绝目录穿越。
func TestSecureJoin_RejectsTraversalOutsideBase(t *testing.T) {
	base := t.TempDir()
	if _, err := SecureJoin(base, filepath.Join("..", "escape.png")); err == nil {
		t.Fatalf("期望目录穿越返回错误")
	}
}

// 测试内容：验证基目录下的符号链接目录会被拒绝。
func TestSecureJoin_RejectsSymlinkInChain(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink 需要额外权限")
	}
	base := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(base, "link")); err != nil {
		t.Fatalf("创建符号链接失败: %v", err)
	}

	if _, err := SecureJoin(base, filepath.Join("link", "a.png")); err == nil {
		t.Fatalf("期望符号链接穿透返回错误")
	}
}
