// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/handlers"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	var publisher cache.ActionPublisher = cache.NopPublisher{}
	if cfg.RedisAddr != "" {
		rp, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB, cfg.QueueName)
		if err != nil {
			logger.Warnf("action feed disabled: %v", err)
		} else {
			logger.Infof("publishing game actions to Redis list %q at %s", rp.QueueName, cfg.RedisAddr)
			publisher = rp
		}
	}
	defer publisher.Close()

	srv := handlers.NewGameServer(logger, publisher)
	defer srv.Close()
	srv.DebugDeck = cfg.DebugDeck
	srv.CORSOrigins = cfg.CORSOrigins()
	srv.DefaultRules.DeferredColorChoice = cfg.DeferColor

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IdleTimeout > 0 {
		go srv.RunJanitor(ctx, time.Minute, cfg.IdleTimeout)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Running on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
