package config

import (
	"os"
	"strconv"
	"strings"
)

// Config aquanotes-admin（管理控制台客户端）配置
type Config struct {
	API struct {
		BaseURL        string
		TimeoutSeconds int
	}
	// StateDir 本地状态目录（token / api key / theme 持久化）
	StateDir    string
	DownloadDir string
	Cache       struct {
		Backend    string // "memory" | "redis"
		TTLSeconds int
		Redis      struct {
			Addr     string
			Password string
			DB       int
		}
	}
	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}

	// Default matches the backend dev address the dashboard always used.
	cfg.API.BaseURL = strings.TrimSuffix(getEnv("AQUANOTES_API_BASE_URL", "http://localhost:8000"), "/")
	cfg.API.TimeoutSeconds = parseInt(getEnv("AQUANOTES_API_TIMEOUT", "15"), 15)

	home, _ := os.UserHomeDir()
	cfg.StateDir = getEnv("AQUANOTES_STATE_DIR", home+"/.aquanotes-admin")
	cfg.DownloadDir = getEnv("AQUANOTES_DOWNLOAD_DIR", cfg.StateDir+"/downloads")

	cfg.Cache.Backend = getEnv("AQUANOTES_CACHE_BACKEND", "memory")
	cfg.Cache.TTLSeconds = parseInt(getEnv("AQUANOTES_CACHE_TTL", "30"), 30)
	cfg.Cache.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Cache.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Cache.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
