package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	strategy := os.Getenv("RANKER_STRATEGY")
	if strategy == "" {
		strategy = "text"
	}

	if strategy != "text" && strategy != "vector" {
		return nil, fmt.Errorf("RANKER_STRATEGY must be \"text\" or \"vector\", got %q", strategy)
	}

	mode := os.Getenv("SCORING_MODE")
	if mode == "" {
		mode = "presence"
	}

	if mode != "presence" && mode != "frequency" {
		return nil, fmt.Errorf("SCORING_MODE must be \"presence\" or \"frequency\", got %q", mode)
	}

	return &Config{
		DatabaseURL:    databaseURL,
		GeminiAPIKey:   geminiKey,
		Environment:    environment,
		SynonymsPath:   os.Getenv("SYNONYMS_PATH"),
		RankerStrategy: strategy,
		ScoringMode:    mode,
	}, nil
}
