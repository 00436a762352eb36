package nats

// Stream names
const (
	// StreamRefresh is the JetStream stream name for background refresh tasks
	StreamRefresh = "ARENA_REFRESH"
)

// Subject names for task scheduling and processing
const (
	// SubjectRefreshPlayerMatches is the NATS subject for per-player match refresh tasks
	SubjectRefreshPlayerMatches = "refreshPlayerMatches"

	// SubjectRefreshChampionRoster is the NATS subject for champion roster refresh tasks
	SubjectRefreshChampionRoster = "refreshChampionRoster"
)

// Task type identifiers used by the scheduler's handler registry
const (
	TaskTypeRefreshPlayerMatches  = "refreshPlayerMatches"
	TaskTypeRefreshChampionRoster = "refreshChampionRoster"
)

// Task names used in worker logs
const (
	TaskNamePlayerMatchesRefresh  = "player matches refresh"
	TaskNameChampionRosterRefresh = "champion roster refresh"
)

// Consumer names for JetStream pull consumers
const (
	// ConsumerWorkerPlayerMatches is the durable consumer name for the match refresh worker
	ConsumerWorkerPlayerMatches = "worker-player-matches"

	// ConsumerWorkerChampionRoster is the durable consumer name for the roster refresh worker
	ConsumerWorkerChampionRoster = "worker-champion-roster"
)
