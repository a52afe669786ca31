package handler

import (
	"os"
	"testing"

	"portal-berita-server/internal/modules/user/repo"
	userservice "portal-berita-server/internal/modules/user/service"
	"portal-berita-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	cleanup := testutils.InitTestConfig("portal-berita-user-handler-*")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestHandler(t *testing.T) (*Handler, *userservice.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := userservice.New(repo.NewUserRepository(testutils.SetupDB(t)))
	return New(svc), svc
}
