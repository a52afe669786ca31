//go:build wireinject
// +build wireinject

package di

import (
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/modules"
	"portal-berita-server/internal/platform/cache"
	"portal-berita-server/internal/platform/imagehost"
	"portal-berita-server/internal/router"

	"github.com/google/wire"
)

func InitializeApplication(handles *db.Handles, cacheStore cache.Cache, host imagehost.Host) (*Application, error) {
	wire.Build(
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
