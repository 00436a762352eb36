package main

import (
	"net/http"
	"time"

	"arena-stats/cmd/api/middleware"
	"arena-stats/cmd/api/v1endpoints"
	"arena-stats/internal/core/auth"
	"arena-stats/internal/core/config"
	"arena-stats/internal/core/riot"
	"arena-stats/internal/ddragon"
	"arena-stats/internal/matches"
	"arena-stats/internal/service"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/store"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	lredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.mongodb.org/mongo-driver/mongo"
)

type route struct {
	Path    string
	Handler http.HandlerFunc
}

func StartAPIServer(cfg config.Config, redisClient *redis.Client, mongoClient *mongo.Client, natsConn *nats.Conn, jsContext jetstream.JetStream) error {
	// creates rate limits for routes and sets up a redis store to hold them
	publicRateLimit, err := limiter.NewRateFromFormatted("5-S")
	if err != nil {
		logs.Error("failed to create public rate limiter", "err", err)
		return err
	}
	privateRateLimit, err := limiter.NewRateFromFormatted("100-M")
	if err != nil {
		logs.Error("failed to create private rate limiter", "err", err)
		return err
	}
	limiterStore, err := lredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix:          "limiter",
		CleanUpInterval: 5 * time.Minute,
	})
	if err != nil {
		logs.Error("failed to create redis store", "err", err)
		return err
	}

	riotScheduler := riot.NewScheduler(cfg.RiotRequestsPerS, cfg.RiotBurst, cfg.RiotMaxInFlight)
	riotClient := riot.NewClient(cfg, riotScheduler)
	matchStore := store.NewMatchStore(mongoClient, cfg.MongoDB)
	playerStore := store.NewPlayerStore(mongoClient, cfg.MongoDB)
	orchestrator := matches.NewOrchestrator(riotClient, matchStore)
	rosterFetcher := ddragon.NewFetcher(cfg, redisClient)
	svc := service.New(riotClient, orchestrator, rosterFetcher, true)
	authenticator := auth.NewAuthenticator(cfg)

	mux := http.NewServeMux()

	// Global middleware constructors, applied to all routes via groups
	globalConstructors := []middleware.MiddlewareConstructor{}

	// Public and private groups, with middleware constructors applied after global
	publicGroup := middleware.NewGroup(mux,
		append(globalConstructors,
			middleware.RateLimiterConstructor(limiterStore, publicRateLimit),
		)...,
	)
	privateGroup := middleware.NewGroup(mux,
		append(globalConstructors,
			middleware.RateLimiterConstructor(limiterStore, privateRateLimit),
			middleware.BearerAuthConstructor(authenticator),
		)...,
	)

	// Define public routes
	publicRoutes := []route{
		{
			Path: "/v1/matches",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				v1endpoints.MatchesHandler(w, r, svc)
			},
		},
		{
			Path: "/v1/teammates",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				v1endpoints.TeammatesHandler(w, r, svc)
			},
		},
		{
			Path: "/v1/champions/played",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				v1endpoints.ChampionsPlayedHandler(w, r, svc)
			},
		},
		{
			Path: "/v1/champions/won",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				v1endpoints.ChampionsWonHandler(w, r, svc)
			},
		},
	}
	for _, route := range publicRoutes {
		publicGroup.HandleFunc(route.Path, route.Handler)
	}

	// Define private routes
	privateRoutes := []route{
		{
			Path: "/private/v1/players",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				v1endpoints.PlayersHandler(w, r, riotClient, playerStore, jsContext)
			},
		},
	}
	for _, route := range privateRoutes {
		privateGroup.HandleFunc(route.Path, route.Handler)
	}

	// Operational endpoints bypass the rate limiter
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logs.Info("api http server starting", "addr", ":"+cfg.APIPort)
	if err := http.ListenAndServe(":"+cfg.APIPort, mux); err != nil {
		logs.Error("api http server error", "err", err)
		return err
	}
	return nil
}
