package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	FrontendURL string
	LogLevel    string
	// Mail dispatch endpoint (externally owned HTTP function)
	MailDispatchURL     string
	MailDispatchTimeout time.Duration // 0 = no timeout
	// Contact sessions
	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepSchedule string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Optional Postgres for the submission attempt log
	DBUrl string
	// Operator export of the attempt log; disabled when empty
	AdminAPIKey string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitSendThreshold   int
	// Analytics
	AnalyticsEnabled bool
}

func LoadConfig() (*Config, error) {
	// Local .env only; in production the variables come from the environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnvironment(),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		// Mail dispatch
		MailDispatchURL:     getEnv("MAIL_DISPATCH_URL", ""),
		MailDispatchTimeout: time.Duration(getEnvInt("MAIL_DISPATCH_TIMEOUT_SECONDS", 0)) * time.Second,
		// Sessions
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionTTL:           time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		SessionSweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 5m"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		DBUrl:                getEnv("DATABASE_URL", ""),
		AdminAPIKey:          getEnv("ADMIN_API_KEY", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitSendThreshold:   getEnvInt("RATE_LIMIT_SEND_THRESHOLD", 5),
		AnalyticsEnabled:         getEnvBool("ANALYTICS_ENABLED", true),
	}

	if cfg.MailDispatchURL == "" {
		log.Println("WARNING: MAIL_DISPATCH_URL is missing. Every send will fail.")
	}
	if cfg.SessionSecret == "" {
		if cfg.Environment == "production" {
			return nil, errMissing("SESSION_SECRET")
		}
		log.Println("WARNING: SESSION_SECRET not set. Using an insecure development secret.")
		cfg.SessionSecret = "dev-insecure-session-secret"
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Sessions and rate limits stay in process memory.")
	}
	if cfg.MailDispatchTimeout < 0 {
		cfg.MailDispatchTimeout = 0
	}

	return cfg, nil
}

type missingEnvError string

func (e missingEnvError) Error() string {
	return string(e) + " must be set in production"
}

func errMissing(key string) error {
	return missingEnvError(key)
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
