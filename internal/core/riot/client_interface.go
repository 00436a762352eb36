package riot

import "context"

// ClientInterface defines the typed upstream operations used by the fetch
// pipeline. This allows for easier testing and abstraction.
type ClientInterface interface {
	// ResolveAccount resolves a riot id to its stable puuid.
	ResolveAccount(ctx context.Context, gameName, tagLine string) (Account, error)
	// ResolveSummoner returns summoner profile data for a puuid.
	ResolveSummoner(ctx context.Context, puuid string) (Summoner, error)
	// ListMatchIDPage returns one fixed-size page of match ids at an offset.
	ListMatchIDPage(ctx context.Context, puuid string, start int) ([]string, error)
	// FetchMatchDetail returns the full match document for a match id.
	FetchMatchDetail(ctx context.Context, matchID string) (MatchData, error)
}
