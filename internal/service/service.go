// Package service exposes the player statistics operations consumed by the
// route layer. Every operation resolves the riot id to a puuid first, pulls
// the complete match set through the incremental fetch pipeline, and runs the
// pure aggregation over the result.
package service

import (
	"context"

	"arena-stats/internal/core/riot"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/stats"
)

// MatchSource yields a player's complete match set (cache plus upstream).
type MatchSource interface {
	FetchAll(ctx context.Context, puuid, playerName string) ([]riot.MatchData, error)
}

// RosterSource yields the full champion roster in alphabetical order.
type RosterSource interface {
	Roster(ctx context.Context) ([]string, error)
}

// ChampionReport partitions the full roster against a champion set,
// preserving roster order in both halves.
type ChampionReport struct {
	RosterOrder []string `json:"rosterOrder"`
	Champions   []string `json:"champions"`
	Missing     []string `json:"missing"`
}

// Service wires the upstream client, fetch pipeline, and roster reference.
type Service struct {
	client      riot.ClientInterface
	matchSource MatchSource
	roster      RosterSource
	enrichIcons bool
}

// New builds a Service. enrichIcons controls whether teammate rows are
// annotated with profile icons via one extra summoner lookup per teammate.
func New(client riot.ClientInterface, matchSource MatchSource, roster RosterSource, enrichIcons bool) *Service {
	return &Service{
		client:      client,
		matchSource: matchSource,
		roster:      roster,
		enrichIcons: enrichIcons,
	}
}

// AllMatches returns every cached and newly fetched match document for a
// riot id. Order is unspecified.
func (s *Service) AllMatches(ctx context.Context, gameName, tagLine string) ([]riot.MatchData, error) {
	account, err := s.client.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	return s.matchSource.FetchAll(ctx, account.PUUID, account.GameName)
}

// TeammateWinRates returns the per-teammate win tallies for a riot id,
// highest shared-game count first.
func (s *Service) TeammateWinRates(ctx context.Context, gameName, tagLine string) ([]stats.TeammateRow, error) {
	account, err := s.client.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	matchSet, err := s.matchSource.FetchAll(ctx, account.PUUID, account.GameName)
	if err != nil {
		return nil, err
	}

	rows := stats.TeammateWinRates(matchSet, account.PUUID)
	if s.enrichIcons {
		if err := s.attachProfileIcons(ctx, rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// ChampionsPlayed partitions the roster into champions the player has and
// has not played.
func (s *Service) ChampionsPlayed(ctx context.Context, gameName, tagLine string) (ChampionReport, error) {
	return s.championReport(ctx, gameName, tagLine, func(pool stats.ChampionPool) map[string]struct{} {
		return pool.Played
	})
}

// ChampionsWon partitions the roster into champions the player has and has
// not taken first place with.
func (s *Service) ChampionsWon(ctx context.Context, gameName, tagLine string) (ChampionReport, error) {
	return s.championReport(ctx, gameName, tagLine, func(pool stats.ChampionPool) map[string]struct{} {
		return pool.Won
	})
}

func (s *Service) championReport(ctx context.Context, gameName, tagLine string, pick func(stats.ChampionPool) map[string]struct{}) (ChampionReport, error) {
	account, err := s.client.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		return ChampionReport{}, err
	}
	matchSet, err := s.matchSource.FetchAll(ctx, account.PUUID, account.GameName)
	if err != nil {
		return ChampionReport{}, err
	}
	roster, err := s.roster.Roster(ctx)
	if err != nil {
		return ChampionReport{}, err
	}

	set := pick(stats.Champions(matchSet, account.PUUID))
	in, out := stats.PartitionRoster(roster, set)
	return ChampionReport{
		RosterOrder: roster,
		Champions:   in,
		Missing:     out,
	}, nil
}

// attachProfileIcons annotates rows with each teammate's profile icon. A
// teammate whose summoner record is gone upstream is left unannotated;
// any other upstream failure aborts.
func (s *Service) attachProfileIcons(ctx context.Context, rows []stats.TeammateRow) error {
	for i := range rows {
		summoner, err := s.client.ResolveSummoner(ctx, rows[i].PUUID)
		if err != nil {
			if riot.IsNotFound(err) {
				logs.Warn("summoner lookup for teammate failed", "summoner", rows[i].SummonerName, "error", err)
				continue
			}
			return err
		}
		rows[i].ProfileIconID = summoner.ProfileIconID
	}
	return nil
}
