package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"arena-stats/internal/core/config"
)

func newTestClient(serverURL string) *Client {
	cfg := config.Config{
		RiotAPIKey:      "test-key",
		RiotAccountURL:  serverURL,
		RiotPlatformURL: serverURL,
		RiotMatchURL:    serverURL,
	}
	sched := NewScheduler(1000, 1000, 5)
	return NewClient(cfg, sched)
}

// TestResolveAccount tests the riot id lookup path, headers, and decoding.
func TestResolveAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/riot/account/v1/accounts/by-riot-id/Faker/KR1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Riot-Token") != "test-key" {
			t.Error("expected X-Riot-Token header to be set")
		}
		w.Write([]byte(`{"puuid":"puuid-1","gameName":"Faker","tagLine":"KR1"}`))
	}))
	defer server.Close()

	account, err := newTestClient(server.URL).ResolveAccount(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if account.PUUID != "puuid-1" {
		t.Errorf("expected puuid-1, got %q", account.PUUID)
	}
}

// TestResolveAccount_NotFound tests that an unknown riot id yields a typed
// not-found error.
func TestResolveAccount_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":{"message":"Data not found","status_code":404}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ResolveAccount(context.Background(), "NoSuch", "EUW")
	if err == nil {
		t.Fatal("expected error for unknown riot id")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found classification, got: %v", err)
	}
}

// TestListMatchIDPage tests the query parameters of the id listing endpoint.
func TestListMatchIDPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("queue") != "1700" {
			t.Errorf("expected queue=1700, got %q", q.Get("queue"))
		}
		if q.Get("start") != "200" {
			t.Errorf("expected start=200, got %q", q.Get("start"))
		}
		if q.Get("count") != "100" {
			t.Errorf("expected count=100, got %q", q.Get("count"))
		}
		w.Write([]byte(`["EUW1_1","EUW1_2"]`))
	}))
	defer server.Close()

	ids, err := newTestClient(server.URL).ListMatchIDPage(context.Background(), "puuid-1", 200)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(ids) != 2 || ids[0] != "EUW1_1" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

// TestFetchMatchDetail_RetriesRateLimit tests that a 429 with Retry-After is
// absorbed: the call succeeds after waiting out the signaled delay.
func TestFetchMatchDetail_RetriesRateLimit(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"metadata":{"matchId":"EUW1_1"},"info":{"queueId":1700}}`))
	}))
	defer server.Close()

	start := time.Now()
	match, err := newTestClient(server.URL).FetchMatchDetail(context.Background(), "EUW1_1")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected success after retry, got: %v", err)
	}
	if match.Metadata.MatchID != "EUW1_1" {
		t.Errorf("unexpected match id: %q", match.Metadata.MatchID)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
	if elapsed < time.Second {
		t.Errorf("expected at least 1s wait before retry, got %v", elapsed)
	}
}

// TestResolveSummoner_UpstreamError tests that other non-2xx responses
// surface as upstream errors carrying the status.
func TestResolveSummoner_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":{"message":"Internal server error","status_code":500}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ResolveSummoner(context.Background(), "puuid-1")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got: %v", err)
	}
	if upstream.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", upstream.Status)
	}
}
