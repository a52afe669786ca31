package db

import (
	"context"
	"fmt"
	"log"
	"portal-berita-server/internal/config"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo 集合名
const (
	CollectionUsers   = "users"
	CollectionPosts   = "posts"
	CollectionGallery = "galleries"
)

const mongoConnectAttempts = 3

// OpenMongo 连接 MongoDB，失败时重试
func OpenMongo(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	uri := cfg.URI
	if uri == "" {
		log.Println("⚠️ 未设置 database.uri，使用本地默认地址")
		uri = "mongodb://127.0.0.1:27017"
	}

	var lastErr error
	for i := 1; i <= mongoConnectAttempts; i++ {
		client, err := connectMongo(ctx, uri)
		if err == nil {
			log.Printf("✅ MongoDB 已连接 (db=%s)", cfg.Name)
			return client, client.Database(cfg.Name), nil
		}
		lastErr = err
		log.Printf("❌ MongoDB 第 %d 次连接失败: %v", i, err)

		if i < mongoConnectAttempts {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
	return nil, nil, fmt.Errorf("connect mongo: %w", lastErr)
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureMongoIndexes 创建查询所需索引（幂等）
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userName", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionPosts: {
			{Keys: bson.D{{Key: "categories", Value: 1}}},
			{Keys: bson.D{{Key: "timeOfPost", Value: -1}}},
			{Keys: bson.D{{Key: "isFeaturedPost", Value: 1}}},
			{Keys: bson.D{{Key: "authorId", Value: 1}}},
		},
		CollectionGallery: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	return nil
}
