package store

import (
	"context"
	"fmt"

	"arena-stats/internal/core/riot"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const matchCollection = "matches"

// MatchRecord is one cached match for one player. Created the first time a
// match id is fetched for a puuid, immutable afterwards, never deleted.
type MatchRecord struct {
	PUUID      string         `bson:"puuid"`
	PlayerName string         `bson:"player_name"`
	MatchID    string         `bson:"match_id"`
	Data       riot.MatchData `bson:"data"`
}

// MatchStore is the persistent cache of fetched match documents, keyed by
// (puuid, match_id).
type MatchStore struct {
	coll *mongo.Collection
}

// NewMatchStore returns a store over the matches collection.
func NewMatchStore(client *mongo.Client, database string) *MatchStore {
	return &MatchStore{coll: client.Database(database).Collection(matchCollection)}
}

// EnsureIndexes creates the unique compound index on (puuid, match_id).
// The index is what makes UpsertMany idempotent under concurrent writers.
func (s *MatchStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "puuid", Value: 1},
			{Key: "match_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("puuid_match_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("match store: ensure indexes: %w", err)
	}
	return nil
}

// FindByPlayer returns every cached match for a puuid.
func (s *MatchStore) FindByPlayer(ctx context.Context, puuid string) ([]MatchRecord, error) {
	cursor, err := s.coll.Find(ctx, bson.D{{Key: "puuid", Value: puuid}})
	if err != nil {
		return nil, fmt.Errorf("match store: find by player: %w", err)
	}
	defer cursor.Close(ctx)

	var records []MatchRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("match store: decode records: %w", err)
	}
	return records, nil
}

// UpsertMany inserts records that are not yet present. Duplicate
// (puuid, match_id) pairs are no-ops: match content is immutable, so
// $setOnInsert with upsert covers the full contract.
func (s *MatchStore) UpsertMany(ctx context.Context, records []MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, r := range records {
		filter := bson.D{
			{Key: "puuid", Value: r.PUUID},
			{Key: "match_id", Value: r.MatchID},
		}
		update := bson.D{{Key: "$setOnInsert", Value: r}}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	_, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("match store: upsert batch of %d: %w", len(records), err)
	}
	return nil
}
