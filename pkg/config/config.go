package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	BackendURL     string
	BackendTimeout time.Duration

	AIServiceURL string
	AIAuthSecret string
	AIRatePerSec float64
	AITimeout    time.Duration

	// DatabaseURL is optional: sessions stay in memory when it is empty.
	DatabaseURL string
	// RedisURL is optional: the listing/news cache is bypassed when it is empty.
	RedisURL string
	CacheTTL time.Duration
	// CacheWarmSpec is a cron expression; empty disables the warm-up job.
	CacheWarmSpec string
	// SessionPurgeSpec schedules removal of expired sessions.
	SessionPurgeSpec string

	JWTSecret         string
	JWTIssuer         string
	SessionTTLMinutes int

	JobsPageSize       int
	NewsPageSize       int
	MatchMinPercentage int

	CORSOrigins string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		BackendURL:         strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		BackendTimeout:     getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		AIServiceURL:       strings.TrimRight(getEnv("AI_SERVICE_URL", "http://localhost:8000"), "/"),
		AIAuthSecret:       os.Getenv("AI_AUTH_SECRET"),
		AIRatePerSec:       getEnvFloat("AI_RATE_PER_SEC", 2),
		AITimeout:          getEnvDuration("AI_TIMEOUT", 60*time.Second),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		CacheTTL:           getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheWarmSpec:      os.Getenv("CACHE_WARM_SPEC"),
		SessionPurgeSpec:   getEnv("SESSION_PURGE_SPEC", "@every 15m"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:          getEnv("JWT_ISSUER", "jobboard"),
		SessionTTLMinutes:  getEnvInt("SESSION_TTL_MINUTES", 60),
		JobsPageSize:       getEnvInt("JOBS_PAGE_SIZE", 6),
		NewsPageSize:       getEnvInt("NEWS_PAGE_SIZE", 9),
		MatchMinPercentage: getEnvInt("MATCH_MIN_PERCENTAGE", 10),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("15s") and bare seconds ("15").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
