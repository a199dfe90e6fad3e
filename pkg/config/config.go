package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries the service configuration, read from the environment.
type Config struct {
	Port string

	MongoURI       string
	DatabaseName   string
	CollectionName string

	YouTubeAPIKey string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiRPM     int

	WorkerCount int
	QueueSize   int

	// Optional search replica (cmd/replicate).
	PostgresDSN      string
	SupabaseURL      string
	SupabaseKey      string
	SupabasePassword string
}

// Load reads configuration from environment variables, applying defaults.
// Missing API keys are a fatal configuration error: the service cannot do
// anything useful without them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:   getenv("DB_NAME", "videosummarizer"),
		CollectionName: getenv("DB_COLLECTION", "videos"),

		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		GeminiRPM:     getenvInt("GEMINI_RPM", 30),

		WorkerCount: getenvInt("WORKER_COUNT", 4),
		QueueSize:   getenvInt("QUEUE_SIZE", 64),

		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseKey:      os.Getenv("SUPABASE_KEY"),
		SupabasePassword: os.Getenv("SUPABASE_DB_PASSWORD"),
	}

	if cfg.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
