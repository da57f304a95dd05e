package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	TokenSweepEvery  time.Duration
	CORSOrigins      []string

	// Firebase
	FirebaseCredentials string
	FirebaseProjectID   string

	// AI providers
	AIProvider    string
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Explore requester
	ExploreEndpoint    string
	ExploreTimeout     time.Duration
	ExploreConcurrency int

	// Content generation
	GenerationMaxRetries int
	GenerationRetryDelay time.Duration
	GenerationQuotaDelay time.Duration

	PlacesAPIKey string
	LogLevel     string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	port := getEnv("PORT", "5000")

	return &Config{
		Port:             port,
		GinMode:          getEnv("GIN_MODE", "release"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=settlease port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour), // 7 days
		TokenSweepEvery:  getDuration("TOKEN_SWEEP_INTERVAL", time.Hour),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),

		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		ExploreEndpoint:    getEnv("EXPLORE_ENDPOINT", "http://localhost:"+port+"/generate-content"),
		ExploreTimeout:     getDuration("EXPLORE_TIMEOUT", 0),
		ExploreConcurrency: getInt("EXPLORE_CONCURRENCY", 3),

		GenerationMaxRetries: getInt("GENERATION_MAX_RETRIES", 2),
		GenerationRetryDelay: getDuration("GENERATION_RETRY_DELAY", time.Second),
		GenerationQuotaDelay: getDuration("GENERATION_QUOTA_DELAY", 10*time.Second),

		PlacesAPIKey: getEnv("PLACES_API_KEY", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
