package refresh

import (
	"context"
	"time"

	natscore "arena-stats/internal/core/nats"
	rediscore "arena-stats/internal/core/redis"
	"arena-stats/internal/ddragon"
	"arena-stats/internal/shared/logs"

	redislib "github.com/redis/go-redis/v9"
)

const rosterRefreshLockKey = "ddragon:roster:refresh_lock"

// ChampionRoster re-reads the champion roster from the Data Dragon CDN and
// repopulates the Redis cache. The roster changes only on game patches, so a
// failed refresh is retried with backoff rather than treated as urgent.
func ChampionRoster(natsMessage MessageInterface, redisClient *redislib.Client, fetcher *ddragon.Fetcher) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deliveryCount := uint64(0)
	if natsMessage != nil {
		deliveryCount = natsMessage.NumDelivered()
	}
	logs.Info("starting champion roster refresh", "delivery_count", deliveryCount)

	lockAcquired, cleanup, err := rediscore.AcquireRefreshLock(ctx, redisClient, rosterRefreshLockKey)
	if err != nil {
		logs.Warn("failed to acquire refresh lock, acknowledging message", "error", err)
		ackMessage(natsMessage, "lock acquisition error")
		return
	}
	if !lockAcquired {
		logs.Info("skipping refresh, another refresh in progress, acknowledging message")
		ackMessage(natsMessage, "lock already held")
		return
	}
	defer cleanup()

	names, err := fetcher.Refresh(ctx)
	if err != nil {
		logs.Error("champion roster refresh failed, nacking with backoff", "error", err, "delivery_count", deliveryCount)
		if natsMessage != nil {
			natscore.NackWithBackoff(natsMessage)
		}
		return
	}

	logs.Info("champion roster refresh completed", "champions", len(names))
	ackMessage(natsMessage, "success")
}
