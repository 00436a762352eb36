package v1endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	natscore "arena-stats/internal/core/nats"
	"arena-stats/internal/core/riot"
	"arena-stats/internal/scheduler"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/shared/metrics"
	"arena-stats/internal/store"

	"github.com/nats-io/nats.go/jetstream"
)

type trackRequest struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// PlayersHandler handles the tracked player set.
// GET: lists tracked players.
// POST: resolves a riot id, adds it to the tracked set, and triggers an
// initial background match refresh.
func PlayersHandler(w http.ResponseWriter, r *http.Request, riotClient riot.ClientInterface, players *store.PlayerStore, js jetstream.JetStream) {
	start := time.Now()
	m := metrics.GetAPIStats()
	endpoint := "players"

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		listPlayers(ctx, w, players, m)
	case http.MethodPost:
		trackPlayer(ctx, w, r, riotClient, players, js, m)
	default:
		m.Errors.WithLabelValues(endpoint, "method_not_allowed").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m.Requests.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func listPlayers(ctx context.Context, w http.ResponseWriter, players *store.PlayerStore, m *metrics.APIStatsMetrics) {
	tracked, err := players.List(ctx)
	if err != nil {
		m.Errors.WithLabelValues("players", "store_error").Inc()
		logs.Error("failed to list tracked players", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if tracked == nil {
		tracked = []store.TrackedPlayer{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tracked); err != nil {
		m.Errors.WithLabelValues("players", "encode_error").Inc()
		logs.Error("failed to encode tracked players", "error", err)
	}
}

func trackPlayer(ctx context.Context, w http.ResponseWriter, r *http.Request, riotClient riot.ClientInterface, players *store.PlayerStore, js jetstream.JetStream, m *metrics.APIStatsMetrics) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.Errors.WithLabelValues("players", "bad_request").Inc()
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.GameName == "" || req.TagLine == "" {
		m.Errors.WithLabelValues("players", "bad_request").Inc()
		http.Error(w, "Invalid request: gameName and tagLine are required", http.StatusBadRequest)
		return
	}

	account, err := riotClient.ResolveAccount(ctx, req.GameName, req.TagLine)
	if err != nil {
		if riot.IsNotFound(err) {
			m.Errors.WithLabelValues("players", "not_found").Inc()
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		m.Errors.WithLabelValues("players", "upstream_error").Inc()
		logs.Error("failed to resolve account for tracking", "game_name", req.GameName, "tag_line", req.TagLine, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	player := store.TrackedPlayer{
		PUUID:        account.PUUID,
		GameName:     account.GameName,
		TagLine:      account.TagLine,
		TrackedSince: time.Now().UTC(),
	}

	// Icon is cosmetic, a missing summoner record doesn't block tracking.
	summoner, err := riotClient.ResolveSummoner(ctx, account.PUUID)
	if err != nil {
		logs.Warn("failed to resolve summoner for tracked player", "player", player.DisplayName(), "error", err)
	} else {
		player.ProfileIconID = summoner.ProfileIconID
	}

	if err := players.Track(ctx, player); err != nil {
		m.Errors.WithLabelValues("players", "store_error").Inc()
		logs.Error("failed to track player", "player", player.DisplayName(), "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Warm the cache right away rather than waiting for the hourly sweep.
	refreshReq := natscore.RefreshPlayerRequest{
		PUUID:      player.PUUID,
		PlayerName: player.DisplayName(),
	}
	if err := scheduler.PublishPlayerRefresh(js, refreshReq); err != nil {
		logs.Warn("failed to publish initial refresh for tracked player", "player", player.DisplayName(), "error", err)
	}

	logs.Info("player tracked", "player", player.DisplayName(), "puuid", player.PUUID)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(player); err != nil {
		m.Errors.WithLabelValues("players", "encode_error").Inc()
		logs.Error("failed to encode tracked player", "error", err)
	}
}
