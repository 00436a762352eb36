package v1endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arena-stats/internal/core/riot"
	"arena-stats/internal/service"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/shared/metrics"
)

// statsRequestTimeout bounds one stats request end to end, including a full
// incremental match refresh for players never seen before.
const statsRequestTimeout = 5 * time.Minute

// MatchesHandler handles GET requests for a player's full match set.
// Expects ?gameName=...&tagLine=... query parameters.
func MatchesHandler(w http.ResponseWriter, r *http.Request, svc *service.Service) {
	serveStats(w, r, "matches", func(ctx context.Context, gameName, tagLine string) (any, error) {
		return svc.AllMatches(ctx, gameName, tagLine)
	})
}

// TeammatesHandler handles GET requests for per-teammate win rates.
func TeammatesHandler(w http.ResponseWriter, r *http.Request, svc *service.Service) {
	serveStats(w, r, "teammates", func(ctx context.Context, gameName, tagLine string) (any, error) {
		return svc.TeammateWinRates(ctx, gameName, tagLine)
	})
}

// ChampionsPlayedHandler handles GET requests for the played champion split.
func ChampionsPlayedHandler(w http.ResponseWriter, r *http.Request, svc *service.Service) {
	serveStats(w, r, "champions_played", func(ctx context.Context, gameName, tagLine string) (any, error) {
		return svc.ChampionsPlayed(ctx, gameName, tagLine)
	})
}

// ChampionsWonHandler handles GET requests for the won champion split.
func ChampionsWonHandler(w http.ResponseWriter, r *http.Request, svc *service.Service) {
	serveStats(w, r, "champions_won", func(ctx context.Context, gameName, tagLine string) (any, error) {
		return svc.ChampionsWon(ctx, gameName, tagLine)
	})
}

func serveStats(w http.ResponseWriter, r *http.Request, endpoint string, fetch func(ctx context.Context, gameName, tagLine string) (any, error)) {
	start := time.Now()
	m := metrics.GetAPIStats()

	ctx, cancel := context.WithTimeout(r.Context(), statsRequestTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		m.Errors.WithLabelValues(endpoint, "method_not_allowed").Inc()
		logs.Warn("invalid method for stats endpoint", "endpoint", endpoint, "method", r.Method, "ip", r.RemoteAddr)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gameName, tagLine, err := extractRiotID(r)
	if err != nil {
		m.Errors.WithLabelValues(endpoint, "bad_request").Inc()
		logs.Warn("invalid riot id in request", "endpoint", endpoint, "error", err, "ip", r.RemoteAddr)
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	result, err := fetch(ctx, gameName, tagLine)
	if err != nil {
		if riot.IsNotFound(err) {
			m.Errors.WithLabelValues(endpoint, "not_found").Inc()
			logs.Warn("player not found", "endpoint", endpoint, "game_name", gameName, "tag_line", tagLine)
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		m.Errors.WithLabelValues(endpoint, "upstream_error").Inc()
		logs.Error("stats request failed", "endpoint", endpoint, "game_name", gameName, "tag_line", tagLine, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	duration := time.Since(start)
	m.Requests.WithLabelValues(endpoint).Observe(duration.Seconds())
	logs.Info("stats request completed",
		"endpoint", endpoint,
		"game_name", gameName,
		"tag_line", tagLine,
		"duration_ms", duration.Milliseconds(),
		"ip", r.RemoteAddr,
	)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		m.Errors.WithLabelValues(endpoint, "encode_error").Inc()
		logs.Error("failed to encode response", "endpoint", endpoint, "error", err)
	}
}

func extractRiotID(r *http.Request) (string, string, error) {
	gameName := r.URL.Query().Get("gameName")
	tagLine := r.URL.Query().Get("tagLine")
	if gameName == "" {
		return "", "", fmt.Errorf("missing 'gameName' query parameter")
	}
	if tagLine == "" {
		return "", "", fmt.Errorf("missing 'tagLine' query parameter")
	}
	return gameName, tagLine, nil
}
