package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/souzadediogo/community-brain/internal/gateway/config"
	httpapi "github.com/souzadediogo/community-brain/internal/gateway/http"
	"github.com/souzadediogo/community-brain/internal/gateway/proxy"
	"github.com/souzadediogo/community-brain/internal/log"
	"github.com/souzadediogo/community-brain/internal/metrics"
)

// @title API Gateway
// @version 0.1.0
// @description Authenticating gateway in front of the community and assistant services.
// @schemes http https
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.MustRegister()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			_ = rdb.Close()
			rdb = nil
		}
		cancel()
		if rdb != nil {
			defer rdb.Close()
		}
	}

	h := httpapi.NewHandler(proxy.New(cfg.CommunityURL), proxy.New(cfg.AssistantURL))
	r := httpapi.NewRouter(h, cfg.JWTSecret, rdb, cfg.RateLimitPerMin)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	logger.Info("api-gateway listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
