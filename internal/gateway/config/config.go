package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	JWTSecret       string
	CommunityURL    string
	AssistantURL    string
	RedisAddr       string
	RateLimitPerMin int
	Prod            bool
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "4000"),
		JWTSecret:       getenv("JWT_SECRET", "your-secret-key-change-in-production"),
		CommunityURL:    getenv("COMMUNITY_SERVICE_URL", "http://localhost:4001"),
		AssistantURL:    getenv("ASSISTANT_SERVICE_URL", "http://localhost:5000"),
		RedisAddr:       os.Getenv("REDIS_ADDR"), // empty disables rate limiting
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "60")),
		Prod:            os.Getenv("APP_ENV") == "production",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
