package testutils

import (
	"os"
	"portal-berita-server/internal/config"
)

// SavedEnv captures the previous state of an environment variable.
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv sets an environment variable and returns its previous state.
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// RestoreEnv restores environment variables to a previously saved state.
func RestoreEnv(envs []SavedEnv) {
	for _, env := range envs {
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}

// InitTestConfig 在临时目录加载测试配置，返回清理函数，供各包 TestMain 使用。
func InitTestConfig(pattern string) func() {
	tmpDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		panic(err)
	}

	envs := []SavedEnv{
		SetEnv("PORTAL_BERITA_SERVER_MODE", "debug"),
		SetEnv("PORTAL_BERITA_JWT_SECRET", "test_secret"),
		SetEnv("PORTAL_BERITA_JWT_EXPIRATION_HOURS", "24"),
		SetEnv("PORTAL_BERITA_REDIS_ENABLED", "false"),
		SetEnv("PORTAL_BERITA_UPLOAD_TEMP_DIR", tmpDir),
		SetEnv("PORTAL_BERITA_UPLOAD_PATH", tmpDir+string(os.PathSeparator)+"gallery"),
	}
	config.InitConfigWithoutWatch(tmpDir)

	return func() {
		RestoreEnv(envs)
		_ = os.RemoveAll(tmpDir)
	}
}
