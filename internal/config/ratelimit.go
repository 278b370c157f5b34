package config

import "time"

// RateLimitConfig controls the Redis-backed request limiter.  When
// Enabled is false or no Redis client could be created, the limiter
// middleware becomes a pass-through.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // allowed requests per window
	Window  time.Duration // fixed window length
	Prefix  string        // key namespace in Redis
}

// LoadRateLimitConfig reads rate limiter settings from the environment
// with defaults of 60 requests per minute.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   getenvInt("RATE_LIMIT_REQUESTS", 60),
		Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}
