package main

import (
	"context"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/core/mongo"
	"arena-stats/internal/core/nats"
	"arena-stats/internal/core/redis"
	"arena-stats/internal/core/riot"
	"arena-stats/internal/ddragon"
	"arena-stats/internal/matches"
	"arena-stats/internal/shared"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/store"

	antslib "github.com/panjf2000/ants/v2"
)

const workerPoolSize = 10

func main() {
	// signal-aware context first
	ctx, cancel := shared.NewSignalContext(context.Background())

	cfg := config.Load()

	cleanupFns := []func(context.Context){}

	mongoClient, err := mongo.Connect(cfg)
	if err != nil {
		logs.Error("failed to connect to mongo", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { mongo.Cleanup(c, mongoClient) })

	redisClient, err := redis.Connect(cfg)
	if err != nil {
		logs.Error("failed to connect to redis", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { redis.Cleanup(c, redisClient) })

	natsConn, jsContext, err := nats.ConnectJetStream(cfg)
	if err != nil {
		logs.Error("failed to connect to nats", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { nats.Cleanup(natsConn) })

	if err := nats.EnsureStreams(jsContext, []nats.StreamConfig{
		{
			Name:     nats.StreamRefresh,
			Subjects: []string{nats.SubjectRefreshPlayerMatches, nats.SubjectRefreshChampionRoster},
			MaxAge:   24 * time.Hour,
		},
	}); err != nil {
		logs.Error("failed to ensure jetstream streams", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}

	matchStore := store.NewMatchStore(mongoClient, cfg.MongoDB)
	if err := matchStore.EnsureIndexes(ctx); err != nil {
		logs.Error("failed to ensure match store indexes", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}

	riotScheduler := riot.NewScheduler(cfg.RiotRequestsPerS, cfg.RiotBurst, cfg.RiotMaxInFlight)
	riotClient := riot.NewClient(cfg, riotScheduler)
	orchestrator := matches.NewOrchestrator(riotClient, matchStore)
	rosterFetcher := ddragon.NewFetcher(cfg, redisClient)

	pool, err := antslib.NewPool(workerPoolSize)
	if err != nil {
		logs.Error("failed to create worker pool", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { pool.Release() })

	stopMatches, err := SubscribePlayerMatches(jsContext, pool, redisClient, orchestrator)
	if err != nil {
		logs.Error("failed to subscribe to player matches refresh", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, stopMatches)

	stopRoster, err := SubscribeChampionRoster(jsContext, pool, redisClient, rosterFetcher)
	if err != nil {
		logs.Error("failed to subscribe to champion roster refresh", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, stopRoster)

	logs.Info("worker service running")

	// normal blocking shutdown
	shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
}
