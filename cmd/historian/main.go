// cmd/historian/main.go tails the Redis action feed, logging each batch and every game that goes quiet.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/historian"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	rp, err := cache.ConnectRedis(addr, cfg.RedisDB, cfg.QueueName)
	if err != nil {
		logger.Fatalf("historian: %v", err)
	}
	defer rp.Close()

	opts := historian.DefaultOptions()
	opts.BatchSize = cfg.HistorianBatchSize
	opts.FlushDelay = cfg.HistorianFlushDelay
	opts.Inactivity = cfg.HistorianInactivity

	sink := func(_ context.Context, batch []cache.GameActionRecord) error {
		for _, rec := range batch {
			logger.WithFields(logrus.Fields{
				"game_id":      rec.GameID,
				"action_index": rec.ActionIndex,
				"actor":        rec.ActorPlayerID,
				"action":       rec.ActionType,
				"payload":      rec.ActionPayload,
				"timestamp":    rec.Timestamp,
			}).Info("game action")
		}
		return nil
	}
	onInactive := func(id uuid.UUID) {
		logger.WithField("game_id", id).Warn("game abandoned")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := historian.NewService(cache.NewRedisSource(rp), sink, opts, logger, onInactive)
	svc.Run(ctx)
}
