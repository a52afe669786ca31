package service

import (
	"os"
	"testing"

	"portal-berita-server/internal/modules/user/repo"
	"portal-berita-server/internal/testutils"
)

func TestMain(m *testing.M) {
	cleanup := testutils.InitTestConfig("portal-berita-user-service-*")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(repo.NewUserRepository(testutils.SetupDB(t)))
}
