package main

import (
	"context"
	"fmt"
	"log"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/di"
	"portal-berita-server/internal/model"
	userdto "portal-berita-server/internal/modules/user/dto"
	userrepo "portal-berita-server/internal/modules/user/repo"
	userservice "portal-berita-server/internal/modules/user/service"
	"portal-berita-server/internal/platform/cache"
	"portal-berita-server/internal/platform/imagehost"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "portal-berita-server",
		Short:         consts.ApplicationName,
		Version:       consts.ApplicationVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configDir)
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "config", "配置文件目录")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "启动 HTTP 服务（默认命令）",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(configDir)
			},
		},
		newRoutesCmd(&configDir),
		newAdminCmd(&configDir),
	)
	return root
}

// newRoutesCmd 导出路由表，不连接任何外部服务
func newRoutesCmd(configDir *string) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "导出路由到 JSON 文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfigWithoutWatch(*configDir)
			r, cleanup, err := buildOfflineEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			return exportAPI(r, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "routes.json", "输出文件")
	return cmd
}

// buildOfflineEngine 使用内存数据库与本地图床组装路由
func buildOfflineEngine() (*gin.Engine, func(), error) {
	gdb, err := db.OpenSQL(config.DatabaseConfig{Type: "sqlite", Filename: "file::memory:"})
	if err != nil {
		return nil, nil, err
	}
	handles := db.NewSQLHandles(gdb)
	cfg := config.Get()

	app, err := di.InitializeApplication(handles, cache.NewMemoryCache(), imagehost.NewLocalHost(cfg.Upload.Path, cfg.Upload.URLPrefix))
	if err != nil {
		_ = handles.Close(context.Background())
		return nil, nil, err
	}

	r := gin.New()
	app.Router.Init(r)
	return r, func() { _ = handles.Close(context.Background()) }, nil
}

func newAdminCmd(configDir *string) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "管理员账号维护",
	}

	var req userdto.CreateAdminRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "创建管理员账号",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile()
			config.InitConfigWithoutWatch(*configDir)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			handles, err := db.Open(ctx, config.Get().Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = handles.Close(context.Background()) }()

			user, err := createAdmin(ctx, userrepo.NewUserStore(handles), req)
			if err != nil {
				return err
			}
			log.Printf("✅ 管理员 %s (%s) 创建成功", user.UserName, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Email, "email", "", "邮箱")
	create.Flags().StringVar(&req.UserName, "username", "", "用户名")
	create.Flags().StringVar(&req.Password, "password", "", "密码")
	create.Flags().StringVar(&req.FullName, "fullname", "", "姓名（默认与用户名相同）")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	admin.AddCommand(create)
	return admin
}

func createAdmin(ctx context.Context, store userrepo.UserStore, req userdto.CreateAdminRequest) (*model.User, error) {
	return userservice.New(store).CreateAdmin(ctx, req)
}
