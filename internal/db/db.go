package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/model"
	"time"

	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const TypeMongo = "mongo"

// Handles 进程级数据库句柄，启动时显式初始化，关闭时统一释放。
// SQL 与 Mongo 二者只会有一个非空。
type Handles struct {
	SQL   *gorm.DB
	Mongo *mongo.Database

	mongoClient *mongo.Client
}

// Open 根据 database.type 打开对应的数据库
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Handles, error) {
	if cfg.Type == TypeMongo {
		client, database, err := OpenMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("create mongo indexes: %w", err)
		}
		return &Handles{Mongo: database, mongoClient: client}, nil
	}

	gdb, err := OpenSQL(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(gdb); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Printf("✅ 数据库(%s)连接成功，表结构已同步", cfg.Type)
	return &Handles{SQL: gdb}, nil
}

// NewSQLHandles 包装已打开的 gorm 连接（测试使用）
func NewSQLHandles(gdb *gorm.DB) *Handles {
	return &Handles{SQL: gdb}
}

// Close 释放底层连接池
func (h *Handles) Close(ctx context.Context) error {
	if h == nil {
		return nil
	}
	var errs []error
	if h.mongoClient != nil {
		if err := h.mongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}
	if h.SQL != nil {
		if sqlDB, err := h.SQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close sql: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Ping 检查数据库连通性，供健康检查使用
func (h *Handles) Ping(ctx context.Context) error {
	if h == nil {
		return errors.New("database not initialized")
	}
	if h.Mongo != nil {
		return h.Mongo.Client().Ping(ctx, nil)
	}
	sqlDB, err := h.SQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// OpenSQL 打开关系型数据库（sqlite / mysql / postgres）
func OpenSQL(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		dialector = mysql.Open(dsn)
	case "postgres":
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		fallthrough
	default:
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}
		// 启用 WAL 模式和繁忙等待，提升 SQLite 并发性能
		dsn := cfg.Filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取 sql.DB: %w", err)
	}

	if cfg.Type == "sqlite" || cfg.Type == "" {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gdb, nil
}

// AutoMigrate 同步表结构
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.GalleryImage{},
	)
}
