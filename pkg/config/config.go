package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Drafting DraftingConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path       string
	StorageKey string
}

// AIConfig holds provider endpoints. Credentials are never read from the
// environment; they arrive per request or from the persisted workspace.
type AIConfig struct {
	AnthropicBaseURL string
	OpenAIBaseURL    string
	GoogleBaseURL    string
	SerperURL        string
	Timeout          int
}

type DraftingConfig struct {
	Concurrency int
}

type SeedConfig struct {
	File string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 300),
		},
		Database: DatabaseConfig{
			Path:       getEnv("DB_PATH", "./prnow.db"),
			StorageKey: getEnv("STORAGE_KEY", "pr-now-storage"),
		},
		AI: AIConfig{
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			GoogleBaseURL:    getEnv("GOOGLE_BASE_URL", "https://generativelanguage.googleapis.com"),
			SerperURL:        getEnv("SERPER_URL", "https://google.serper.dev/search"),
			Timeout:          getEnvAsInt("AI_TIMEOUT", 0),
		},
		Drafting: DraftingConfig{
			Concurrency: getEnvAsInt("DRAFT_CONCURRENCY", 3),
		},
		Seed: SeedConfig{
			File: getEnv("SEED_FILE", ""),
		},
	}

	if AppConfig.Drafting.Concurrency < 1 {
		log.Printf("Invalid DRAFT_CONCURRENCY %d, using 1", AppConfig.Drafting.Concurrency)
		AppConfig.Drafting.Concurrency = 1
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
