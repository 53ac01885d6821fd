package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/souzadediogo/community-brain/internal/community/config"
	httpapi "github.com/souzadediogo/community-brain/internal/community/http"
	"github.com/souzadediogo/community-brain/internal/community/queue"
	"github.com/souzadediogo/community-brain/internal/community/repo"
	"github.com/souzadediogo/community-brain/internal/log"
	"github.com/souzadediogo/community-brain/internal/metrics"
)

// @title Community Service API
// @version 0.1.0
// @description Threads, posts and user profiles for the community Q&A platform.
// @schemes http https
// @BasePath /
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	// Indexing is best-effort: without a broker the service runs in
	// degraded mode and writes keep succeeding.
	var pub queue.Publisher
	if rabbit, err := queue.NewRabbit(cfg.RabbitURL); err != nil {
		logger.Warn("rabbitmq unavailable, indexing disabled", zap.Error(err))
		pub = queue.NewNoop()
	} else {
		pub = rabbit
	}
	defer pub.Close()

	h := httpapi.NewHandler(store, pub)
	r := httpapi.NewRouter(h, cfg.JWTSecret)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	logger.Info("community-service listening", zap.String("port", cfg.Port))

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
