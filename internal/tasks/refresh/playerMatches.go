// Package refresh holds the worker task handlers triggered by JetStream
// messages. Each handler owns the full lifecycle of its message: it acks on
// success or when retrying is pointless, and nacks with backoff otherwise.
package refresh

import (
	"context"
	"encoding/json"
	"time"

	"arena-stats/internal/matches"

	natscore "arena-stats/internal/core/nats"
	rediscore "arena-stats/internal/core/redis"
	"arena-stats/internal/shared/logs"

	redislib "github.com/redis/go-redis/v9"
)

// playerRefreshTimeout bounds one full incremental refresh, including every
// paginated upstream call made under the shared rate budget.
const playerRefreshTimeout = 10 * time.Minute

// PlayerMatches runs an incremental match refresh for the player named in the
// message payload. A per-player Redis lock keeps concurrent refreshes for the
// same player from racing; a held lock means a refresh is already underway,
// so the message is acknowledged rather than retried.
func PlayerMatches(natsMessage MessageInterface, redisClient *redislib.Client, orchestrator *matches.Orchestrator) {
	ctx, cancel := context.WithTimeout(context.Background(), playerRefreshTimeout)
	defer cancel()

	deliveryCount := uint64(0)
	if natsMessage != nil {
		deliveryCount = natsMessage.NumDelivered()
	}

	var req natscore.RefreshPlayerRequest
	if natsMessage != nil {
		if err := json.Unmarshal(natsMessage.Data(), &req); err != nil {
			logs.Error("malformed player refresh payload, terminating message", "error", err, "delivery_count", deliveryCount)
			if termErr := natsMessage.Term(); termErr != nil {
				logs.Warn("failed to terminate malformed message", "error", termErr)
			}
			return
		}
	}
	if req.PUUID == "" {
		logs.Error("player refresh payload missing puuid, terminating message", "delivery_count", deliveryCount)
		if natsMessage != nil {
			if termErr := natsMessage.Term(); termErr != nil {
				logs.Warn("failed to terminate message without puuid", "error", termErr)
			}
		}
		return
	}

	logs.Info("starting player match refresh", "puuid", req.PUUID, "player", req.PlayerName, "delivery_count", deliveryCount)

	lockKey := rediscore.RefreshLockKey(req.PUUID)
	lockAcquired, cleanup, err := rediscore.AcquireRefreshLock(ctx, redisClient, lockKey)
	if err != nil {
		logs.Warn("failed to acquire refresh lock, acknowledging message", "error", err, "puuid", req.PUUID)
		ackMessage(natsMessage, "lock acquisition error")
		return
	}
	if !lockAcquired {
		logs.Info("skipping refresh, another refresh in progress, acknowledging message", "puuid", req.PUUID)
		ackMessage(natsMessage, "lock already held")
		return
	}
	defer cleanup()

	// initial heartbeat so long fetches don't time out
	if natsMessage != nil {
		_ = natsMessage.InProgress()
	}

	heartbeatStop := startHeartbeat(ctx, natsMessage)
	_, err = orchestrator.FetchAll(ctx, req.PUUID, req.PlayerName)
	heartbeatStop()
	if err != nil {
		logs.Error("player match refresh failed, nacking with backoff",
			"error", err,
			"puuid", req.PUUID,
			"player", req.PlayerName,
			"delivery_count", deliveryCount)
		if natsMessage != nil {
			natscore.NackWithBackoff(natsMessage)
		}
		return
	}

	ackMessage(natsMessage, "success")
}

// startHeartbeat keeps the message in progress while a long refresh runs.
// The returned function stops the heartbeat.
func startHeartbeat(ctx context.Context, natsMessage MessageInterface) func() {
	if natsMessage == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = natsMessage.InProgress()
			}
		}
	}()
	return func() { close(done) }
}

func ackMessage(natsMessage MessageInterface, reason string) {
	if natsMessage == nil {
		return
	}
	if err := natsMessage.Ack(); err != nil {
		logs.Warn("failed to ack message", "reason", reason, "error", err)
		return
	}
	logs.Info("message acknowledged", "reason", reason)
}
