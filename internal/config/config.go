package config

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// 用于管理应用配置

const (
	envPrefix         = "PORTAL_BERITA"
	insecureJWTSecret = "portal_berita_secret"
)

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Upload    UploadConfig    `mapstructure:"upload"`
	ImageHost ImageHostConfig `mapstructure:"image_host"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port                   string   `mapstructure:"port"`
	Mode                   string   `mapstructure:"mode"`
	CORSOrigins            []string `mapstructure:"cors_origins"`
	MaxBodySizeMB          int      `mapstructure:"max_body_size_mb"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds"`
	// TrustedProxies 逗号、分号或空白分隔的代理地址，留空表示不信任任何代理
	TrustedProxies string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // mongo, sqlite, mysql, postgres
	URI      string `mapstructure:"uri"`  // for mongo
	Filename string `mapstructure:"filename"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSL      bool   `mapstructure:"ssl"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

type UploadConfig struct {
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
	TempDir      string `mapstructure:"temp_dir"`
	Path         string `mapstructure:"path"`
	URLPrefix    string `mapstructure:"url_prefix"`
	CacheControl string `mapstructure:"cache_control"`
}

type ImageHostConfig struct {
	Provider       string `mapstructure:"provider"` // cloudinary, local
	CloudinaryURL  string `mapstructure:"cloudinary_url"`
	CloudName      string `mapstructure:"cloud_name"`
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	Folder         string `mapstructure:"folder"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type CacheConfig struct {
	TTLSeconds        int `mapstructure:"ttl_seconds"`
	InvalidateRetries int `mapstructure:"invalidate_retries"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	AuthRPS     float64 `mapstructure:"auth_rps"`
	AuthBurst   int     `mapstructure:"auth_burst"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// InitConfig 加载配置并监听配置文件变更
func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			log.Printf("🔄 检测到配置文件变更: %s", e.Name)
			loadAndStore(v)
		})
		v.WatchConfig()
	}
	log.Println("✅ 配置加载成功")
}

// InitConfigWithoutWatch 仅加载一次配置，供测试与一次性命令使用
func InitConfigWithoutWatch(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("server.max_body_size_mb", 2)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("database.type", "mongo")
	v.SetDefault("database.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("database.filename", "database/portal_berita.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "portal_berita")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("upload.temp_dir", "")
	v.SetDefault("upload.path", "uploads/gallery")
	v.SetDefault("upload.url_prefix", "/imgs/")
	v.SetDefault("upload.cache_control", "public, max-age=604800")
	v.SetDefault("image_host.provider", "local")
	v.SetDefault("image_host.cloudinary_url", "")
	v.SetDefault("image_host.cloud_name", "")
	v.SetDefault("image_host.api_key", "")
	v.SetDefault("image_host.api_secret", "")
	v.SetDefault("image_host.folder", "portal-berita/gallery")
	v.SetDefault("image_host.timeout_seconds", 30)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "portal_berita")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.invalidate_retries", 3)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth_rps", 0.5)
	v.SetDefault("rate_limit.auth_burst", 5)
	v.SetDefault("rate_limit.upload_rps", 1)
	v.SetDefault("rate_limit.upload_burst", 5)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 规则：所有环境变量必须以 PORTAL_BERITA_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 PORTAL_BERITA_SERVER_PORT
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ 配置解析失败: %v", err)
		return
	}

	// 环境变量传入的逗号列表需要去除空白
	var origins []string
	for _, o := range tempConfig.Server.CORSOrigins {
		origins = append(origins, splitList(o)...)
	}
	tempConfig.Server.CORSOrigins = origins

	if tempConfig.Server.Mode == "release" {
		if tempConfig.JWT.Secret == "" || tempConfig.JWT.Secret == insecureJWTSecret {
			log.Println("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！")
		}
	} else if tempConfig.JWT.Secret == "" {
		log.Println("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
		tempConfig.JWT.Secret = insecureJWTSecret
	}

	appConfig.Store(&tempConfig)
	log.Println("✅ 配置已更新")
}

func enforceJWTSecretSafety() {
	curr := Get()
	if curr.Server.Mode == "release" {
		if curr.JWT.Secret == "" || curr.JWT.Secret == insecureJWTSecret {
			log.Fatal("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！\n请设置环境变量 PORTAL_BERITA_JWT_SECRET 或在配置文件中指定 jwt.secret")
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
