package llm

import (
	"fmt"
	"os"
	"strconv"
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderGemini // default
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	generatorModel := os.Getenv("CHAT_MODEL")
	if generatorModel == "" {
		generatorModel = "gemini-2.0-flash" // default
	}

	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderGemini // default
	}

	embedderModel := os.Getenv("EMBEDDING_MODEL")
	if embedderModel == "" {
		embedderModel = "text-embedding-004" // default
	}

	generatorMaxTokens := 2048 // default
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(0.7) // default
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      apiKey,
		GeneratorModel:       generatorModel,
		EmbedderProvider:     embedderProvider,
		EmbedderAPIKey:       apiKey,
		EmbedderModel:        embedderModel,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
	}, nil
}
