package llm

import "context"

// combines text generation and embedding generation
type LLM interface {
	TextGenerator
	Embedder
}

// represents different LLM providers
type Provider string

const (
	ProviderGemini Provider = "gemini"
)

// generates conversational replies from a system prompt plus history
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

// holds configuration for LLM initialization
type Config struct {
	// generator configuration
	GeneratorProvider Provider
	GeneratorAPIKey   string
	GeneratorModel    string // e.g., "gemini-2.0-flash"

	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-004"

	// optional generator parameters
	GeneratorMaxTokens   int
	GeneratorTemperature float32
}
