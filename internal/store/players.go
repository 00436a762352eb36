package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const playerCollection = "players"

// TrackedPlayer is a player whose match cache the scheduler keeps warm.
type TrackedPlayer struct {
	PUUID         string    `bson:"puuid" json:"puuid"`
	GameName      string    `bson:"game_name" json:"gameName"`
	TagLine       string    `bson:"tag_line" json:"tagLine"`
	ProfileIconID int       `bson:"profile_icon_id" json:"profileIconId"`
	TrackedSince  time.Time `bson:"tracked_since" json:"trackedSince"`
}

// DisplayName returns the riot id in "GameName#TagLine" form.
func (p TrackedPlayer) DisplayName() string {
	return p.GameName + "#" + p.TagLine
}

// PlayerStore persists the set of tracked players.
type PlayerStore struct {
	coll *mongo.Collection
}

// NewPlayerStore returns a store over the players collection.
func NewPlayerStore(client *mongo.Client, database string) *PlayerStore {
	return &PlayerStore{coll: client.Database(database).Collection(playerCollection)}
}

// EnsureIndexes creates the unique index on puuid.
func (s *PlayerStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "puuid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("puuid_unique"),
	})
	if err != nil {
		return fmt.Errorf("player store: ensure indexes: %w", err)
	}
	return nil
}

// Track upserts a player into the tracked set. Re-tracking refreshes the
// display name and icon, which are mutable upstream.
func (s *PlayerStore) Track(ctx context.Context, p TrackedPlayer) error {
	filter := bson.D{{Key: "puuid", Value: p.PUUID}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "game_name", Value: p.GameName},
			{Key: "tag_line", Value: p.TagLine},
			{Key: "profile_icon_id", Value: p.ProfileIconID},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "tracked_since", Value: p.TrackedSince},
		}},
	}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("player store: track %s: %w", p.DisplayName(), err)
	}
	return nil
}

// List returns every tracked player.
func (s *PlayerStore) List(ctx context.Context) ([]TrackedPlayer, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("player store: list: %w", err)
	}
	defer cursor.Close(ctx)

	var players []TrackedPlayer
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("player store: decode players: %w", err)
	}
	return players, nil
}
