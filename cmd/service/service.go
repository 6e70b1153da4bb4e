// @title        MaterialMart API
// @version      1.0
// @description  建材二手刊登平台的後端 API 文件；登入狀態以 session cookie 維持
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"materialmart/internal/api"
	"materialmart/internal/cache"
	"materialmart/internal/config"
	"materialmart/internal/database"
	"materialmart/internal/logging"
	"materialmart/internal/router"
	"materialmart/internal/service"
	"materialmart/internal/session"
	"materialmart/internal/store"
	"materialmart/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "materialmart/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	signalContext   = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	logOutput io.Writer = os.Stdout
	exitFunc            = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logOutput, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signalContext()
	defer stop()

	var db database.DB
	if cfg.NeedsDatabase() {
		db, err = newPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("DB 連線失敗: %w", err)
		}
		defer db.Close()

		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
	}

	repo, err := store.New(cfg.StorageBackend, db)
	if err != nil {
		return err
	}
	if cfg.Production() && cfg.StorageBackend == config.StorageMemory {
		logger.Warn("memory storage backend in production; all data is lost on restart")
	}

	backend, closeBackend, err := newSessionBackend(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeBackend()

	wp := newWorkerPool(cfg.WorkerCount, logger)
	defer wp.Stop()
	if pruner, ok := backend.(session.Pruner); ok {
		go session.RunPruner(ctx, wp, pruner, cfg.SessionPruneInterval, logger)
	}

	sessions := session.NewManager(session.NewServerStore(backend, session.CookieOptions(cfg.Production()), cfg.SessionSecret))

	e := newEcho(logger)
	router.Setup(e, router.Deps{
		Repo:     repo,
		Auth:     service.NewAuth(repo),
		Sessions: sessions,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.Env,
		"storage", cfg.StorageBackend,
		"sessions", cfg.SessionStore,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, ":"+cfg.Port) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(shutdownCtx, e); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// newSessionBackend 依 SESSION_STORE 建立 session backend 與對應的關閉函式
func newSessionBackend(ctx context.Context, cfg *config.Config, db database.DB) (session.Backend, func(), error) {
	switch cfg.SessionStore {
	case config.SessionPostgres:
		b := session.NewPostgresBackend(db)
		if err := b.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("session store 初始化失敗: %w", err)
		}
		return b, func() {}, nil
	case config.SessionRedis:
		c, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("Redis 連線失敗: %w", err)
		}
		closeFn := func() {
			if err := c.Close(); err != nil {
				slog.Error("關閉 Redis 連線失敗", "error", err)
			}
		}
		return session.NewRedisBackend(c), closeFn, nil
	default:
		return session.NewMemoryBackend(), func() {}, nil
	}
}

func newEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	return e
}

func main() {
	if err := run(); err != nil {
		slog.Error("service stopped", "error", err)
		exitFunc(1)
	}
}
