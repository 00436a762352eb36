package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/shared/logs"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes a client with retries and returns it.
func Connect(cfg config.Config) (*mongo.Client, error) {
	retryCount := 5
	retryDelay := 5 * time.Second

	for attempt := 1; attempt <= retryCount; attempt++ {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			logs.Info(fmt.Sprintf("Connected to Mongo on attempt %d/%d", attempt, retryCount))
			return client, nil
		}
		logs.Error(fmt.Sprintf("Failed to connect to Mongo. Attempt %d/%d. Error: %v", attempt, retryCount, err))
		time.Sleep(retryDelay)
	}

	message := fmt.Sprintf("Failed to connect to Mongo after %d attempts. Exiting...", retryCount)
	logs.Error(message)
	return nil, errors.New(message)
}

// Cleanup disconnects the client, tolerating nil.
func Cleanup(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	_ = client.Disconnect(ctx)
}
