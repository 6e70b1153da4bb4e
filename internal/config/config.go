// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SessionMemory   = "memory"
	SessionPostgres = "postgres"
	SessionRedis    = "redis"
)

// Config 服務啟動所需設定，全部來自環境變數
type Config struct {
	Env                  string
	Port                 string
	DatabaseURL          string
	SessionSecret        []byte
	StorageBackend       string
	SessionStore         string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	SessionPruneInterval time.Duration
	WorkerCount          int
	LogLevel             string
}

// Production 是否為正式環境；cookie 需帶 Secure
func (c *Config) Production() bool {
	return c.Env == "production"
}

// loadDotEnv 可在測試中覆寫
var loadDotEnv = func() error { return godotenv.Load() }

// Load 讀取 .env（若存在）與環境變數並檢查必要設定
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StorageBackend: getEnv("STORAGE_BACKEND", StoragePostgres),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("無效的 PORT: %q", cfg.Port)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}
	if len(secret) < 32 {
		slog.Warn("SESSION_SECRET is shorter than 32 bytes; use a longer secret in production")
	}
	cfg.SessionSecret = []byte(secret)

	defaultSessionStore := SessionMemory
	if cfg.Production() {
		defaultSessionStore = SessionPostgres
	}
	cfg.SessionStore = getEnv("SESSION_STORE", defaultSessionStore)

	defaultLevel := "info"
	if !cfg.Production() {
		defaultLevel = "debug"
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", defaultLevel)

	switch cfg.StorageBackend {
	case StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("無效的 STORAGE_BACKEND: %q", cfg.StorageBackend)
	}

	switch cfg.SessionStore {
	case SessionMemory, SessionPostgres:
	case SessionRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
		}
	default:
		return nil, fmt.Errorf("無效的 SESSION_STORE: %q", cfg.SessionStore)
	}

	if cfg.NeedsDatabase() && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisDB

	interval, err := time.ParseDuration(getEnv("SESSION_PRUNE_INTERVAL", "15m"))
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("無效的 SESSION_PRUNE_INTERVAL: %q", os.Getenv("SESSION_PRUNE_INTERVAL"))
	}
	cfg.SessionPruneInterval = interval

	cfg.WorkerCount = 1
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = c
	}

	return cfg, nil
}

// NeedsDatabase 是否有任何元件使用 postgres
func (c *Config) NeedsDatabase() bool {
	return c.StorageBackend == StoragePostgres || c.SessionStore == SessionPostgres
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
