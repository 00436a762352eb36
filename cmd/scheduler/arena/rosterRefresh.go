package arena

import (
	"context"
	"encoding/json"

	natscore "arena-stats/internal/core/nats"
	"arena-stats/internal/scheduler"
)

// ScheduleRosterRefresh sets up a daily cron job that triggers a champion
// roster refresh. Returns a cleanup function and an error if scheduling
// fails.
func ScheduleRosterRefresh(deps scheduler.Dependencies, sched scheduler.Scheduler) (func(), error) {
	jsContext := deps.JSContext
	log := deps.Log

	sched.RegisterHandler(natscore.TaskTypeRefreshChampionRoster, func(ctx context.Context, data json.RawMessage) error {
		subject := natscore.SubjectRefreshChampionRoster
		if err := scheduler.PublishEmptyMessage(jsContext, subject); err != nil {
			log.Error("failed to publish roster refresh trigger", "subject", subject, "error", err)
			return err
		}
		log.Info("champion roster refresh triggered", "subject", subject)
		return nil
	})

	// Data Dragon publishes new rosters on game patches, early morning UTC.
	if err := sched.ScheduleCronJob("30 4 * * *", natscore.TaskTypeRefreshChampionRoster); err != nil {
		return nil, err
	}
	return func() {}, nil
}
