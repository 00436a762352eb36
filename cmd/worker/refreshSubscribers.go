package main

import (
	"context"

	natscore "arena-stats/internal/core/nats"
	"arena-stats/internal/ddragon"
	"arena-stats/internal/matches"
	"arena-stats/internal/tasks/refresh"

	"github.com/nats-io/nats.go/jetstream"
	antslib "github.com/panjf2000/ants/v2"
	redislib "github.com/redis/go-redis/v9"
)

// SubscribePlayerMatches sets up the JetStream pull consumer for per-player
// match refresh messages. Returns a cleanup function and an error if
// subscription fails.
func SubscribePlayerMatches(js jetstream.JetStream, pool *antslib.Pool, redisClient *redislib.Client, orchestrator *matches.Orchestrator) (func(context.Context), error) {
	return SubscribeToSubject(js, pool, SubscriberConfig{
		Subject:      natscore.SubjectRefreshPlayerMatches,
		ConsumerName: natscore.ConsumerWorkerPlayerMatches,
		StreamName:   natscore.StreamRefresh,
		TaskName:     natscore.TaskNamePlayerMatchesRefresh,
		TaskFunc: func(natsMessage refresh.MessageInterface) {
			refresh.PlayerMatches(natsMessage, redisClient, orchestrator)
		},
	})
}

// SubscribeChampionRoster sets up the JetStream pull consumer for champion
// roster refresh messages. Returns a cleanup function and an error if
// subscription fails.
func SubscribeChampionRoster(js jetstream.JetStream, pool *antslib.Pool, redisClient *redislib.Client, fetcher *ddragon.Fetcher) (func(context.Context), error) {
	return SubscribeToSubject(js, pool, SubscriberConfig{
		Subject:      natscore.SubjectRefreshChampionRoster,
		ConsumerName: natscore.ConsumerWorkerChampionRoster,
		StreamName:   natscore.StreamRefresh,
		TaskName:     natscore.TaskNameChampionRosterRefresh,
		TaskFunc: func(natsMessage refresh.MessageInterface) {
			refresh.ChampionRoster(natsMessage, redisClient, fetcher)
		},
	})
}
