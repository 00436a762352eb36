package arena

import (
	"context"
	"encoding/json"

	natscore "arena-stats/internal/core/nats"
	"arena-stats/internal/scheduler"
	"arena-stats/internal/store"
)

// ScheduleTrackedPlayerRefresh sets up an hourly cron job that publishes one
// match refresh message per tracked player. Returns a cleanup function and an
// error if scheduling fails.
func ScheduleTrackedPlayerRefresh(deps scheduler.Dependencies, sched scheduler.Scheduler) (func(), error) {
	jsContext := deps.JSContext
	log := deps.Log
	playerStore := store.NewPlayerStore(deps.Mongo, deps.Cfg.MongoDB)

	sched.RegisterHandler(natscore.TaskTypeRefreshPlayerMatches, func(ctx context.Context, data json.RawMessage) error {
		players, err := playerStore.List(ctx)
		if err != nil {
			log.Error("failed to list tracked players", "error", err)
			return err
		}

		published := 0
		var lastErr error
		for _, p := range players {
			req := natscore.RefreshPlayerRequest{
				PUUID:      p.PUUID,
				PlayerName: p.DisplayName(),
			}
			if err := scheduler.PublishPlayerRefresh(jsContext, req); err != nil {
				log.Error("failed to publish player refresh trigger", "player", p.DisplayName(), "error", err)
				lastErr = err
				continue
			}
			published++
		}

		log.Info("tracked player refresh triggered", "players", len(players), "published", published)
		return lastErr
	})

	if err := sched.ScheduleCronJob("0 * * * *", natscore.TaskTypeRefreshPlayerMatches); err != nil {
		return nil, err
	}
	return func() {}, nil
}
