// Package stats computes cross-match statistics over a player's completed
// match set. All functions are pure.
package stats

import (
	"fmt"
	"sort"

	"arena-stats/internal/core/riot"
)

// minSharedGames is the sample-size floor: a teammate appears in results only
// with strictly more shared games than this.
const minSharedGames = 2

// TeammateRow is one teammate's tally across all shared matches.
type TeammateRow struct {
	PUUID         string `json:"-"`
	SummonerName  string `json:"summonerName"`
	WinRate       string `json:"winRate"`
	TotalGames    int    `json:"totalGames"`
	ProfileIconID int    `json:"profileIconId,omitempty"`
}

type teammateTally struct {
	puuid        string
	summonerName string
	wins         int
	total        int
}

// TeammateWinRates tallies, for every teammate of the queried player, how
// many matches they shared and how many of those the queried player won.
//
// The win counted is the queried player's own outcome, not the teammate's;
// both rows share a team id, so the flags agree in consistent match data.
// Matches missing the queried player's participant row are skipped.
// Rows are ordered by shared-game count, descending, ties stable.
func TeammateWinRates(matchSet []riot.MatchData, puuid string) []TeammateRow {
	tallies := make(map[string]*teammateTally)
	var order []string

	for _, match := range matchSet {
		player, ok := match.PlayerRow(puuid)
		if !ok {
			continue
		}
		for _, mate := range match.Teammates(player) {
			t, seen := tallies[mate.PUUID]
			if !seen {
				t = &teammateTally{puuid: mate.PUUID, summonerName: mate.RiotIDGameName}
				tallies[mate.PUUID] = t
				order = append(order, mate.PUUID)
			}
			t.total++
			if player.Win {
				t.wins++
			}
		}
	}

	rows := make([]TeammateRow, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		if t.total <= minSharedGames {
			continue
		}
		rows = append(rows, TeammateRow{
			PUUID:        t.puuid,
			SummonerName: t.summonerName,
			WinRate:      fmt.Sprintf("%.2f", float64(t.wins)/float64(t.total)*100),
			TotalGames:   t.total,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalGames > rows[j].TotalGames
	})
	return rows
}

// ChampionPool holds the champions the queried player has played, and the
// subset they have taken first place with.
type ChampionPool struct {
	Played map[string]struct{}
	Won    map[string]struct{}
}

// Champions derives the played and won champion sets from a match set.
// A champion counts as won when the player finished in first place.
func Champions(matchSet []riot.MatchData, puuid string) ChampionPool {
	pool := ChampionPool{
		Played: make(map[string]struct{}),
		Won:    make(map[string]struct{}),
	}
	for _, match := range matchSet {
		player, ok := match.PlayerRow(puuid)
		if !ok {
			continue
		}
		pool.Played[player.ChampionName] = struct{}{}
		if player.Placement == 1 {
			pool.Won[player.ChampionName] = struct{}{}
		}
	}
	return pool
}

// PartitionRoster splits the full champion roster into names inside and
// outside the given set, preserving roster order in both halves.
func PartitionRoster(roster []string, set map[string]struct{}) (in, out []string) {
	in = make([]string, 0, len(set))
	out = make([]string, 0, len(roster))
	for _, name := range roster {
		if _, ok := set[name]; ok {
			in = append(in, name)
		} else {
			out = append(out, name)
		}
	}
	return in, out
}
