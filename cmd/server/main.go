package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"devsocial_backend/internal/app/di"
	"devsocial_backend/internal/app/router"
	"devsocial_backend/internal/platform/db"
	"devsocial_backend/internal/platform/externalapi/github"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/platform/logger"
	infraredis "devsocial_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env はローカル開発用。本番では環境変数を直接渡す
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	logger.New(logger.LoadConfig(), os.Stdout)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv())
	if err != nil {
		return err
	}

	// Redis（未設定・接続失敗時はキャッシュなしで起動）
	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// JWT_SECRETチェック
	jwtCfg := jwtmw.LoadConfig()
	if jwtCfg.Secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	tokens := jwtmw.NewService(jwtCfg)

	handlers, err := di.NewHandlers(gdb, tokens, di.NewRepoFinder(github.LoadConfig(), rdb))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           router.NewRouter(handlers, tokens, allowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

// allowedOrigins reads CORS_ALLOWED_ORIGINS as a comma separated list.
func allowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
