package matches

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"arena-stats/internal/core/riot"
	"arena-stats/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	pages       [][]string
	detailErr   map[string]error
	listCalls   int32
	detailCalls int32
}

func (f *fakeClient) ResolveAccount(ctx context.Context, gameName, tagLine string) (riot.Account, error) {
	return riot.Account{}, errors.New("not used")
}

func (f *fakeClient) ResolveSummoner(ctx context.Context, puuid string) (riot.Summoner, error) {
	return riot.Summoner{}, errors.New("not used")
}

func (f *fakeClient) ListMatchIDPage(ctx context.Context, puuid string, start int) ([]string, error) {
	atomic.AddInt32(&f.listCalls, 1)
	idx := start / riot.MatchPageSize
	if idx >= len(f.pages) {
		return nil, nil
	}
	return f.pages[idx], nil
}

func (f *fakeClient) FetchMatchDetail(ctx context.Context, matchID string) (riot.MatchData, error) {
	atomic.AddInt32(&f.detailCalls, 1)
	if err, ok := f.detailErr[matchID]; ok {
		return riot.MatchData{}, err
	}
	return riot.MatchData{
		Metadata: riot.MatchMetadata{MatchID: matchID},
		Info:     riot.MatchInfo{QueueID: 1700},
	}, nil
}

type fakeStore struct {
	records     []store.MatchRecord
	known       map[string]struct{}
	upsertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{known: map[string]struct{}{}}
}

func (s *fakeStore) FindByPlayer(ctx context.Context, puuid string) ([]store.MatchRecord, error) {
	out := make([]store.MatchRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.PUUID == puuid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) UpsertMany(ctx context.Context, records []store.MatchRecord) error {
	s.upsertCalls++
	for _, r := range records {
		if _, ok := s.known[r.PUUID+"/"+r.MatchID]; ok {
			continue
		}
		s.known[r.PUUID+"/"+r.MatchID] = struct{}{}
		s.records = append(s.records, r)
	}
	return nil
}

func (s *fakeStore) seed(puuid string, ids ...string) {
	for _, id := range ids {
		s.records = append(s.records, store.MatchRecord{
			PUUID:   puuid,
			MatchID: id,
			Data: riot.MatchData{
				Metadata: riot.MatchMetadata{MatchID: id},
			},
		})
		s.known[puuid+"/"+id] = struct{}{}
	}
}

func idRange(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s_%d", prefix, i)
	}
	return ids
}

// TestFetchAll_PaginatesUntilShortPage tests that pagination stops at the
// first short page and requests exactly one listing per page.
func TestFetchAll_PaginatesUntilShortPage(t *testing.T) {
	client := &fakeClient{pages: [][]string{
		idRange("page0", 100),
		idRange("page1", 100),
		idRange("page2", 37),
	}}
	st := newFakeStore()

	all, err := NewOrchestrator(client, st).FetchAll(context.Background(), "puuid-1", "Faker#KR1")
	require.NoError(t, err)

	require.Equal(t, int32(3), client.listCalls, "expected exactly 3 id page requests")
	require.Equal(t, int32(237), client.detailCalls)
	require.Len(t, all, 237)
	require.Len(t, st.records, 237)
}

// TestFetchAll_SkipsCachedMatches tests that ids already in the cache are
// never fetched again and the cached copies come back first.
func TestFetchAll_SkipsCachedMatches(t *testing.T) {
	client := &fakeClient{pages: [][]string{{"M1", "M2", "M3"}}}
	st := newFakeStore()
	st.seed("puuid-1", "M1", "M2")

	all, err := NewOrchestrator(client, st).FetchAll(context.Background(), "puuid-1", "Faker#KR1")
	require.NoError(t, err)

	require.Equal(t, int32(1), client.detailCalls, "only the uncached id should be fetched")
	require.Len(t, all, 3)
	require.Equal(t, "M1", all[0].Metadata.MatchID)
	require.Equal(t, "M2", all[1].Metadata.MatchID)
	require.Equal(t, "M3", all[2].Metadata.MatchID)
}

// TestFetchAll_SecondRunIsIdempotent tests that a rerun with a warm cache
// fetches no details and returns the same match set.
func TestFetchAll_SecondRunIsIdempotent(t *testing.T) {
	client := &fakeClient{pages: [][]string{idRange("match", 40)}}
	st := newFakeStore()
	orch := NewOrchestrator(client, st)

	first, err := orch.FetchAll(context.Background(), "puuid-1", "Faker#KR1")
	require.NoError(t, err)
	require.Len(t, first, 40)

	atomic.StoreInt32(&client.detailCalls, 0)
	second, err := orch.FetchAll(context.Background(), "puuid-1", "Faker#KR1")
	require.NoError(t, err)
	require.Len(t, second, 40)
	require.Equal(t, int32(0), client.detailCalls, "warm rerun must not refetch details")
}

// TestFetchAll_KeepsEarlierBatchesOnFailure tests that a detail failure on a
// later page aborts the fetch but leaves earlier pages persisted.
func TestFetchAll_KeepsEarlierBatchesOnFailure(t *testing.T) {
	client := &fakeClient{
		pages: [][]string{
			idRange("page0", 100),
			idRange("page1", 10),
		},
		detailErr: map[string]error{"page1_3": errors.New("upstream exploded")},
	}
	st := newFakeStore()

	_, err := NewOrchestrator(client, st).FetchAll(context.Background(), "puuid-1", "Faker#KR1")
	require.Error(t, err)
	require.Len(t, st.records, 100, "first page batch should remain persisted")
}
