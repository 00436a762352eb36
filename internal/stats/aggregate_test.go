package stats

import (
	"fmt"
	"testing"

	"arena-stats/internal/core/riot"

	"github.com/stretchr/testify/require"
)

const playerID = "player-puuid"

func arenaMatch(id string, win bool, placement int, champion string, matePUUIDs ...string) riot.MatchData {
	participants := []riot.Participant{{
		PUUID:        playerID,
		ChampionName: champion,
		TeamID:       1,
		Placement:    placement,
		Win:          win,
	}}
	for _, mate := range matePUUIDs {
		participants = append(participants, riot.Participant{
			PUUID:          mate,
			RiotIDGameName: "Mate" + mate,
			TeamID:         1,
			Win:            win,
		})
	}
	// pad with opponents on another team
	for i := 0; i < 2; i++ {
		participants = append(participants, riot.Participant{
			PUUID:  fmt.Sprintf("opp-%s-%d", id, i),
			TeamID: 2,
			Win:    !win,
		})
	}
	return riot.MatchData{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info:     riot.MatchInfo{QueueID: 1700, Participants: participants},
	}
}

// TestTeammateWinRates_FiltersSmallSamples tests the sample floor: exactly
// two shared games is excluded, three is included.
func TestTeammateWinRates_FiltersSmallSamples(t *testing.T) {
	matchSet := []riot.MatchData{
		arenaMatch("M1", true, 1, "Ahri", "A", "B"),
		arenaMatch("M2", true, 2, "Zed", "A", "B"),
		arenaMatch("M3", false, 5, "Ahri", "A"),
	}

	rows := TeammateWinRates(matchSet, playerID)

	require.Len(t, rows, 1, "only the teammate with 3 shared games qualifies")
	require.Equal(t, "A", rows[0].PUUID)
	require.Equal(t, 3, rows[0].TotalGames)
	require.Equal(t, "66.67", rows[0].WinRate)
}

// TestTeammateWinRates_SortsByTotalDesc tests ordering by shared-game count.
func TestTeammateWinRates_SortsByTotalDesc(t *testing.T) {
	matchSet := []riot.MatchData{
		arenaMatch("M1", true, 1, "Ahri", "A", "B"),
		arenaMatch("M2", false, 6, "Ahri", "A", "B"),
		arenaMatch("M3", true, 1, "Ahri", "A", "B"),
		arenaMatch("M4", true, 1, "Ahri", "B"),
	}

	rows := TeammateWinRates(matchSet, playerID)

	require.Len(t, rows, 2)
	require.Equal(t, "B", rows[0].PUUID)
	require.Equal(t, 4, rows[0].TotalGames)
	require.Equal(t, "75.00", rows[0].WinRate)
	require.Equal(t, "A", rows[1].PUUID)
	require.Equal(t, 3, rows[1].TotalGames)
}

// TestTeammateWinRates_SkipsMatchesWithoutPlayer tests that a match document
// missing the queried player's row contributes nothing.
func TestTeammateWinRates_SkipsMatchesWithoutPlayer(t *testing.T) {
	foreign := riot.MatchData{
		Metadata: riot.MatchMetadata{MatchID: "M9"},
		Info: riot.MatchInfo{Participants: []riot.Participant{
			{PUUID: "someone-else", TeamID: 1, Win: true},
			{PUUID: "A", TeamID: 1, Win: true},
		}},
	}
	matchSet := []riot.MatchData{
		foreign,
		arenaMatch("M1", true, 1, "Ahri", "A"),
		arenaMatch("M2", true, 1, "Ahri", "A"),
		arenaMatch("M3", true, 1, "Ahri", "A"),
	}

	rows := TeammateWinRates(matchSet, playerID)

	require.Len(t, rows, 1)
	require.Equal(t, 3, rows[0].TotalGames, "foreign match must not count")
}

// TestChampions tests the played and won set derivation: won requires first
// place, not the win flag.
func TestChampions(t *testing.T) {
	matchSet := []riot.MatchData{
		arenaMatch("M1", true, 2, "Ahri"),
		arenaMatch("M2", true, 1, "Garen"),
		arenaMatch("M3", false, 7, "Garen"),
	}

	pool := Champions(matchSet, playerID)

	require.Len(t, pool.Played, 2)
	require.Contains(t, pool.Played, "Ahri")
	require.Contains(t, pool.Played, "Garen")
	require.Len(t, pool.Won, 1)
	require.Contains(t, pool.Won, "Garen")
}

// TestPartitionRoster tests the roster split, preserving roster order.
func TestPartitionRoster(t *testing.T) {
	roster := []string{"Ahri", "Garen", "Zed"}
	set := map[string]struct{}{"Zed": {}, "Ahri": {}}

	in, out := PartitionRoster(roster, set)

	require.Equal(t, []string{"Ahri", "Zed"}, in)
	require.Equal(t, []string{"Garen"}, out)
}
