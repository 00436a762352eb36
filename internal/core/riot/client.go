package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/shared/httpclient"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/shared/metrics"
)

const (
	// MatchPageSize is the fixed, server-defined page size of the match id
	// listing endpoint. A page shorter than this is the last page.
	MatchPageSize = 100

	// queueArena is the Riot queue id of the Arena game mode.
	queueArena = 1700
)

// Client performs typed Riot API calls, each admitted through the shared
// rate-limit Scheduler. It carries no retry logic of its own beyond the
// scheduler's rate-limit handling; NotFound and upstream failures propagate.
type Client struct {
	sched      *Scheduler
	httpClient *http.Client
	apiKey     string

	accountURL  string
	platformURL string
	matchURL    string
}

// NewClient builds a client from config, sharing the given scheduler.
func NewClient(cfg config.Config, sched *Scheduler) *Client {
	return &Client{
		sched: sched,
		httpClient: &http.Client{
			Transport: httpclient.TunedTransport(),
			Timeout:   30 * time.Second,
		},
		apiKey:      cfg.RiotAPIKey,
		accountURL:  cfg.RiotAccountURL,
		platformURL: cfg.RiotPlatformURL,
		matchURL:    cfg.RiotMatchURL,
	}
}

// ResolveAccount looks up the stable puuid for a riot id.
func (c *Client) ResolveAccount(ctx context.Context, gameName, tagLine string) (Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.accountURL, url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	err := c.sched.Schedule(ctx, func(ctx context.Context) error {
		return c.get(ctx, "resolve_account", u, "account", gameName+"#"+tagLine, &account)
	})
	return account, err
}

// ResolveSummoner looks up summoner profile data (profile icon, level) by puuid.
func (c *Client) ResolveSummoner(ctx context.Context, puuid string) (Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s",
		c.platformURL, url.PathEscape(puuid))

	var summoner Summoner
	err := c.sched.Schedule(ctx, func(ctx context.Context) error {
		return c.get(ctx, "resolve_summoner", u, "summoner", puuid, &summoner)
	})
	return summoner, err
}

// ListMatchIDPage returns one page of Arena match ids for a player, newest
// first, starting at the given offset. Page size is fixed at MatchPageSize.
func (c *Client) ListMatchIDPage(ctx context.Context, puuid string, start int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=%d&start=%d&count=%d",
		c.matchURL, url.PathEscape(puuid), queueArena, start, MatchPageSize)

	var ids []string
	err := c.sched.Schedule(ctx, func(ctx context.Context) error {
		return c.get(ctx, "list_match_ids", u, "match id page", puuid, &ids)
	})
	return ids, err
}

// FetchMatchDetail returns the full match document for a match id.
func (c *Client) FetchMatchDetail(ctx context.Context, matchID string) (MatchData, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.matchURL, url.PathEscape(matchID))

	var match MatchData
	err := c.sched.Schedule(ctx, func(ctx context.Context) error {
		return c.get(ctx, "fetch_match", u, "match", matchID, &match)
	})
	return match, err
}

// get performs exactly one upstream call and classifies the outcome.
func (c *Client) get(ctx context.Context, operation, rawURL, resource, key string, out any) error {
	m := metrics.GetRiotClient()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	httpclient.ApplyDefaultHeaders(req)
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		m.Errors.WithLabelValues("transport").Inc()
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	m.Requests.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		m.Errors.WithLabelValues("not_found").Inc()
		return &NotFoundError{Resource: resource, Key: key}

	case resp.StatusCode == http.StatusTooManyRequests:
		m.RateLimitDelays.Inc()
		retryAfter := parseRetryAfter(resp)
		logs.Debug("riot 429 received", "operation", operation, "retry_after", retryAfter)
		return &RateLimitError{RetryAfter: retryAfter}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		m.Errors.WithLabelValues("upstream").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		m.Errors.WithLabelValues("decode").Inc()
		return fmt.Errorf("%s response decode failed: %w", operation, err)
	}
	return nil
}

func parseRetryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
