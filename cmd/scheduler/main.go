package main

import (
	"context"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/core/mongo"
	"arena-stats/internal/core/nats"
	"arena-stats/internal/core/redis"
	"arena-stats/internal/scheduler"
	"arena-stats/internal/shared"
	"arena-stats/internal/shared/logs"

	arenaschedule "arena-stats/cmd/scheduler/arena"
)

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

	natsConn, jsContext, err := nats.ConnectJetStream(cfg)
	if err != nil {
		logs.Error("failed to connect to nats", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { nats.Cleanup(natsConn) })

	redisClient, err := redis.Connect(cfg)
	if err != nil {
		logs.Error("failed to connect to redis", "err", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { redis.Cleanup(c, redisClient) })

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

	log := logs.Component("scheduler")
	registry := NewJobRegistry(log)

	registry.Register(arenaschedule.ScheduleTrackedPlayerRefresh)
	registry.Register(arenaschedule.ScheduleRosterRefresh)

	deps := scheduler.Dependencies{
		NATS:      natsConn,
		JSContext: jsContext,
		Redis:     redisClient,
		Mongo:     mongoClient,
		Cfg:       cfg,
		Log:       log,
	}
	if err := registry.Start(deps); err != nil {
		log.Error("failed to start job registry", "error", err)
		cancel()
		shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
		return
	}
	cleanupFns = append(cleanupFns, func(c context.Context) { registry.Stop() })

	logs.Info("scheduler service running")

	// normal blocking shutdown
	shared.WaitForShutdown(ctx, 5*time.Second, cleanupFns...)
}
