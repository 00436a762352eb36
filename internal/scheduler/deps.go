package scheduler

import (
	"log/slog"

	"arena-stats/internal/core/config"

	natslib "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	redislib "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// Dependencies contains all possible dependencies for schedulers
type Dependencies struct {
	NATS      *natslib.Conn
	JSContext jetstream.JetStream
	Redis     *redislib.Client
	Mongo     *mongodriver.Client
	Cfg       config.Config
	Log       *slog.Logger
}
