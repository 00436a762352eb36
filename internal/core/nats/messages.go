package nats

// RefreshPlayerRequest asks the worker to run an incremental match refresh
// for one tracked player.
type RefreshPlayerRequest struct {
	PUUID      string `json:"puuid"`
	PlayerName string `json:"player_name"`
}

// EmptyMessage represents an empty message with no payload.
// Used for simple trigger messages where no data is needed.
type EmptyMessage struct{}
