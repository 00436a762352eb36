// Package ddragon reads the static champion roster from the Data Dragon CDN.
// The CDN is not covered by the Riot API rate limit, so requests go through a
// plain HTTP client rather than the scheduler.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"arena-stats/internal/core/config"
	rediscore "arena-stats/internal/core/redis"
	"arena-stats/internal/shared/httpclient"
	"arena-stats/internal/shared/logs"

	redislib "github.com/redis/go-redis/v9"
)

// Fetcher serves the alphabetically sorted champion roster, caching it in
// Redis between refreshes. A nil Redis client disables caching.
type Fetcher struct {
	httpClient  *http.Client
	baseURL     string
	redisClient *redislib.Client
	cacheTTL    time.Duration
}

// NewFetcher builds a roster fetcher from config.
func NewFetcher(cfg config.Config, redisClient *redislib.Client) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Transport: httpclient.TunedTransport(),
			Timeout:   30 * time.Second,
		},
		baseURL:     cfg.DDragonURL,
		redisClient: redisClient,
		cacheTTL:    time.Duration(cfg.RosterCacheTTLMin) * time.Minute,
	}
}

// Roster returns the full champion roster, sorted alphabetically. The cached
// copy is served when warm; otherwise the CDN is consulted.
func (f *Fetcher) Roster(ctx context.Context) ([]string, error) {
	if f.redisClient != nil {
		names, err := rediscore.GetChampionRoster(ctx, f.redisClient)
		if err == nil && len(names) > 0 {
			return names, nil
		}
		if err != nil && err != redislib.Nil {
			logs.Warn("roster cache read failed, falling through to CDN", "error", err)
		}
	}
	return f.Refresh(ctx)
}

// Refresh fetches the roster from the CDN and repopulates the cache. The
// previous ETag is replayed when a cached roster exists, so an unchanged
// document costs only a 304.
func (f *Fetcher) Refresh(ctx context.Context) ([]string, error) {
	version, err := f.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	var cached []string
	if f.redisClient != nil {
		cached, _ = rediscore.GetChampionRoster(ctx, f.redisClient)
	}

	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", f.baseURL, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpclient.ApplyDefaultHeaders(req)
	if len(cached) > 0 {
		if etag, err := rediscore.GetRosterETag(ctx, f.redisClient); err == nil && etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("champion roster fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotModified {
		logs.Info("champion roster unchanged (etag match)", "version", version, "champions", len(cached))
		return cached, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("champion roster fetch returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("champion roster decode failed: %w", err)
	}

	names := make([]string, 0, len(payload.Data))
	for name := range payload.Data {
		names = append(names, name)
	}
	sort.Strings(names)

	if f.redisClient != nil {
		if err := rediscore.SaveChampionRoster(ctx, f.redisClient, names, f.cacheTTL); err != nil {
			logs.Warn("failed to cache champion roster", "error", err)
		}
		if err := rediscore.SaveRosterETag(ctx, f.redisClient, resp.Header.Get("ETag")); err != nil {
			logs.Warn("failed to save roster etag", "error", err)
		}
	}

	logs.Info("champion roster refreshed", "version", version, "champions", len(names))
	return names, nil
}

// latestVersion returns the newest Data Dragon version string.
func (f *Fetcher) latestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/versions.json", nil)
	if err != nil {
		return "", err
	}
	httpclient.ApplyDefaultHeaders(req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ddragon versions fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ddragon versions fetch returned status %d", resp.StatusCode)
	}

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("ddragon versions decode failed: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("ddragon returned no versions")
	}
	return versions[0], nil
}
