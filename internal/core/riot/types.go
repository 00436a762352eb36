package riot

// Account is the response of the account-v1 riot-id lookup. The puuid is the
// stable player key; display names are mutable and never used as keys.
type Account struct {
	PUUID    string `json:"puuid" bson:"puuid"`
	GameName string `json:"gameName" bson:"gameName"`
	TagLine  string `json:"tagLine" bson:"tagLine"`
}

// Summoner is the response of the summoner-v4 by-puuid lookup.
type Summoner struct {
	PUUID         string `json:"puuid" bson:"puuid"`
	ProfileIconID int    `json:"profileIconId" bson:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel" bson:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate" bson:"revisionDate"`
}

// MatchData is the match-v5 match document. The service treats it as the
// opaque payload of a cached match; aggregation reads only the participant
// fields below.
type MatchData struct {
	Metadata MatchMetadata `json:"metadata" bson:"metadata"`
	Info     MatchInfo     `json:"info" bson:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId" bson:"matchId"`
	Participants []string `json:"participants" bson:"participants"`
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation" bson:"gameCreation"`
	GameDuration int64         `json:"gameDuration" bson:"gameDuration"`
	GameMode     string        `json:"gameMode" bson:"gameMode"`
	GameVersion  string        `json:"gameVersion" bson:"gameVersion"`
	QueueID      int           `json:"queueId" bson:"queueId"`
	Participants []Participant `json:"participants" bson:"participants"`
}

type Participant struct {
	PUUID          string `json:"puuid" bson:"puuid"`
	RiotIDGameName string `json:"riotIdGameName" bson:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline" bson:"riotIdTagline"`
	ChampionName   string `json:"championName" bson:"championName"`
	TeamID         int    `json:"teamId" bson:"teamId"`
	Placement      int    `json:"placement" bson:"placement"`
	Win            bool   `json:"win" bson:"win"`
}

// PlayerRow returns the participant entry for the given puuid, if present.
func (m MatchData) PlayerRow(puuid string) (Participant, bool) {
	for _, p := range m.Info.Participants {
		if p.PUUID == puuid {
			return p, true
		}
	}
	return Participant{}, false
}

// Teammates returns the participants sharing the player's team, excluding the
// player themselves.
func (m MatchData) Teammates(player Participant) []Participant {
	var mates []Participant
	for _, p := range m.Info.Participants {
		if p.PUUID != player.PUUID && p.TeamID == player.TeamID {
			mates = append(mates, p)
		}
	}
	return mates
}
