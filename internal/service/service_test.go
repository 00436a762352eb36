package service

import (
	"context"
	"errors"
	"testing"

	"arena-stats/internal/core/riot"

	"github.com/stretchr/testify/require"
)

type fakeRiotClient struct {
	accounts  map[string]riot.Account
	summoners map[string]riot.Summoner
}

func (f *fakeRiotClient) ResolveAccount(ctx context.Context, gameName, tagLine string) (riot.Account, error) {
	account, ok := f.accounts[gameName+"#"+tagLine]
	if !ok {
		return riot.Account{}, &riot.NotFoundError{Resource: "account", Key: gameName + "#" + tagLine}
	}
	return account, nil
}

func (f *fakeRiotClient) ResolveSummoner(ctx context.Context, puuid string) (riot.Summoner, error) {
	summoner, ok := f.summoners[puuid]
	if !ok {
		return riot.Summoner{}, &riot.NotFoundError{Resource: "summoner", Key: puuid}
	}
	return summoner, nil
}

func (f *fakeRiotClient) ListMatchIDPage(ctx context.Context, puuid string, start int) ([]string, error) {
	return nil, errors.New("not used")
}

func (f *fakeRiotClient) FetchMatchDetail(ctx context.Context, matchID string) (riot.MatchData, error) {
	return riot.MatchData{}, errors.New("not used")
}

type fakeMatchSource struct {
	matchSet []riot.MatchData
}

func (f *fakeMatchSource) FetchAll(ctx context.Context, puuid, playerName string) ([]riot.MatchData, error) {
	return f.matchSet, nil
}

type fakeRoster struct {
	names []string
}

func (f *fakeRoster) Roster(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func teamMatch(id string, win bool, placement int, champion string, mates ...riot.Participant) riot.MatchData {
	participants := append([]riot.Participant{{
		PUUID:        "p1",
		ChampionName: champion,
		TeamID:       100,
		Placement:    placement,
		Win:          win,
	}}, mates...)
	return riot.MatchData{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info:     riot.MatchInfo{QueueID: 1700, Participants: participants},
	}
}

func newTestService(matchSet []riot.MatchData, roster []string, summoners map[string]riot.Summoner) *Service {
	client := &fakeRiotClient{
		accounts: map[string]riot.Account{
			"Faker#KR1": {PUUID: "p1", GameName: "Faker", TagLine: "KR1"},
		},
		summoners: summoners,
	}
	return New(client, &fakeMatchSource{matchSet: matchSet}, &fakeRoster{names: roster}, true)
}

// TestTeammateWinRates_EnrichesIcons tests icon enrichment: a resolvable
// teammate gets an icon, a vanished one is skipped without failing.
func TestTeammateWinRates_EnrichesIcons(t *testing.T) {
	mateA := riot.Participant{PUUID: "a", RiotIDGameName: "Alpha", TeamID: 100}
	mateB := riot.Participant{PUUID: "b", RiotIDGameName: "Beta", TeamID: 100}
	matchSet := []riot.MatchData{
		teamMatch("M1", true, 1, "Ahri", mateA, mateB),
		teamMatch("M2", true, 2, "Zed", mateA, mateB),
		teamMatch("M3", false, 4, "Ahri", mateA, mateB),
	}
	svc := newTestService(matchSet, nil, map[string]riot.Summoner{
		"a": {PUUID: "a", ProfileIconID: 512},
	})

	rows, err := svc.TeammateWinRates(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 512, rows[0].ProfileIconID)
	require.Zero(t, rows[1].ProfileIconID, "unresolvable teammate stays unannotated")
}

// TestChampionsPlayed tests the roster partition for the played set.
func TestChampionsPlayed(t *testing.T) {
	matchSet := []riot.MatchData{
		teamMatch("M1", true, 2, "Ahri"),
		teamMatch("M2", true, 1, "Garen"),
	}
	svc := newTestService(matchSet, []string{"Ahri", "Garen", "Zed"}, nil)

	report, err := svc.ChampionsPlayed(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	require.Equal(t, []string{"Ahri", "Garen"}, report.Champions)
	require.Equal(t, []string{"Zed"}, report.Missing)
}

// TestChampionsWon tests that only first-place finishes count as won.
func TestChampionsWon(t *testing.T) {
	matchSet := []riot.MatchData{
		teamMatch("M1", true, 2, "Ahri"),
		teamMatch("M2", true, 1, "Garen"),
	}
	svc := newTestService(matchSet, []string{"Ahri", "Garen", "Zed"}, nil)

	report, err := svc.ChampionsWon(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	require.Equal(t, []string{"Garen"}, report.Champions)
	require.Equal(t, []string{"Ahri", "Zed"}, report.Missing)
}

// TestAllMatches_UnknownRiotID tests that an unknown riot id propagates the
// typed not-found error.
func TestAllMatches_UnknownRiotID(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.AllMatches(context.Background(), "NoSuch", "EUW")
	require.Error(t, err)
	require.True(t, riot.IsNotFound(err))
}
