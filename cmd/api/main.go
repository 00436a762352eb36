package main

import (
	"context"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/core/mongo"
	"arena-stats/internal/core/nats"
	"arena-stats/internal/core/redis"
	"arena-stats/internal/shared"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/store"
)

func main() {
	// create signal-aware context first so we can cancel on startup failures
	ctx, cancel := shared.NewSignalContext(context.Background())

	cfg := config.Load()

	cleanupFns := []func(context.Context){}

	redisClient, err := redis.Connect(cfg)
	if err != nil {
		logs.Error("failed to connect to redis", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { redis.Cleanup(c, redisClient) })

	mongoClient, err := mongo.Connect(cfg)
	if err != nil {
		logs.Error("failed to connect to mongo", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { mongo.Cleanup(c, mongoClient) })

	natsConn, jsContext, err := nats.ConnectJetStream(cfg)
	if err != nil {
		logs.Error("failed to connect to nats", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { nats.Cleanup(natsConn) })

	matchStore := store.NewMatchStore(mongoClient, cfg.MongoDB)
	if err := matchStore.EnsureIndexes(ctx); err != nil {
		logs.Error("failed to ensure match store indexes", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	playerStore := store.NewPlayerStore(mongoClient, cfg.MongoDB)
	if err := playerStore.EnsureIndexes(ctx); err != nil {
		logs.Error("failed to ensure player store indexes", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}

	logs.Info("api service running")

	go func() {
		if err := StartAPIServer(cfg, redisClient, mongoClient, natsConn, jsContext); err != nil {
			logs.Error("failed to start api server", "err", err)
			cancel()
		}
	}()

	// normal blocking shutdown path
	shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
}
