package assistant

import (
	"context"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/ranker"
)

// interface for product retrieval
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]ranker.RankedResult, error)
}

// orchestrates retrieval-augmented shopping replies
type Assistant struct {
	retriever Retriever
	generator llm.TextGenerator
	topK      int
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// contains all inputs for answering a shopper query
type AnswerRequest struct {
	Query               string
	ConversationHistory []Message
}

// contains the generated reply and the products behind it
type AnswerResponse struct {
	Reply              string
	Products           []products.Product
	NeedsClarification bool
	Model              string
	InputTokens        int
	OutputTokens       int
}
