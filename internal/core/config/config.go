package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	MongoURI string
	MongoDB  string
	RedisURL string
	NATSURL  string

	RiotAPIKey       string
	RiotAccountURL   string
	RiotPlatformURL  string
	RiotMatchURL     string
	RiotRequestsPerS float64
	RiotBurst        int
	RiotMaxInFlight  int

	DDragonURL        string
	RosterCacheTTLMin int

	AuthSecret string
}

// Load reads configuration from the environment, with a best-effort .env load
// for local development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIPort: getEnv("API_PORT", "8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://mongo:27017"),
		MongoDB:  getEnv("MONGO_DB", "arena_stats"),
		RedisURL: getEnv("REDIS_URL", "redis:6379"),
		NATSURL:  getEnv("NATS_URL", "nats://nats:4222"),

		RiotAPIKey:       getEnv("RIOT_API_KEY", ""),
		RiotAccountURL:   getEnv("RIOT_ACCOUNT_URL", "https://europe.api.riotgames.com"),
		RiotPlatformURL:  getEnv("RIOT_PLATFORM_URL", "https://euw1.api.riotgames.com"),
		RiotMatchURL:     getEnv("RIOT_MATCH_URL", "https://europe.api.riotgames.com"),
		RiotRequestsPerS: getEnvFloat("RIOT_REQUESTS_PER_SECOND", 0.8),
		RiotBurst:        getEnvInt("RIOT_BURST", 1),
		RiotMaxInFlight:  getEnvInt("RIOT_MAX_IN_FLIGHT", 5),

		DDragonURL:        getEnv("DDRAGON_URL", "https://ddragon.leagueoflegends.com"),
		RosterCacheTTLMin: getEnvInt("ROSTER_CACHE_TTL_MINUTES", 1440),

		AuthSecret: getEnv("AUTH_SECRET", "dev-secret-change"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
