package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/ranker"
)

// implements Retriever for testing
type mockRetriever struct {
	retrieveFunc func(ctx context.Context, query string, k int) ([]ranker.RankedResult, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, k int) ([]ranker.RankedResult, error) {
	if m.retrieveFunc != nil {
		return m.retrieveFunc(ctx, query, k)
	}

	return []ranker.RankedResult{
		{Product: products.Product{ID: 2, Title: "Dry Hair Serum", Price: 499}, Score: 27},
	}, nil
}

// implements llm.TextGenerator for testing
type mockGenerator struct {
	generateTextFunc func(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error)
	model            string
}

func (m *mockGenerator) GenerateText(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	if m.generateTextFunc != nil {
		return m.generateTextFunc(ctx, req)
	}

	return &llm.TextGenerationResponse{
		Text:  "Try the Dry Hair Serum for deep hydration.",
		Usage: llm.Usage{InputTokens: 120, OutputTokens: 18},
	}, nil
}

func (m *mockGenerator) Model() string {
	if m.model != "" {
		return m.model
	}

	return "mock-model"
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	mockRet := &mockRetriever{}
	mockGen := &mockGenerator{
		generateTextFunc: func(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			// retrieved products must reach the system prompt
			if !strings.Contains(req.SystemPrompt, "Dry Hair Serum") {
				t.Error("expected system prompt to include retrieved products")
			}

			if len(req.Messages) != 1 {
				t.Errorf("expected 1 message, got %d", len(req.Messages))
			}

			if req.Messages[0].Role != "user" || req.Messages[0].Content != "my hair is dry" {
				t.Errorf("unexpected final message: %+v", req.Messages[0])
			}

			return &llm.TextGenerationResponse{
				Text:  "Try the Dry Hair Serum.",
				Usage: llm.Usage{InputTokens: 100, OutputTokens: 12},
			}, nil
		},
	}

	assistant := New(mockRet, mockGen)

	resp, err := assistant.Answer(ctx, AnswerRequest{Query: "my hair is dry"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if resp.Reply != "Try the Dry Hair Serum." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}

	if len(resp.Products) != 1 || resp.Products[0].ID != 2 {
		t.Errorf("expected retrieved products in response, got %+v", resp.Products)
	}

	if resp.NeedsClarification {
		t.Error("expected no clarification flag for a direct recommendation")
	}

	if resp.Model != "mock-model" {
		t.Errorf("unexpected model: %q", resp.Model)
	}

	if resp.InputTokens != 100 || resp.OutputTokens != 12 {
		t.Errorf("unexpected usage: %d in, %d out", resp.InputTokens, resp.OutputTokens)
	}
}

func TestAnswerDegradesOnRetrievalFailure(t *testing.T) {
	ctx := context.Background()

	mockRet := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ int) ([]ranker.RankedResult, error) {
			return nil, fmt.Errorf("database unavailable")
		},
	}

	mockGen := &mockGenerator{
		generateTextFunc: func(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			if !strings.Contains(req.SystemPrompt, "No products found in the database.") {
				t.Error("expected empty product context after retrieval failure")
			}

			return &llm.TextGenerationResponse{Text: "Could you tell me more about your concern?"}, nil
		},
	}

	assistant := New(mockRet, mockGen)

	resp, err := assistant.Answer(ctx, AnswerRequest{Query: "help"})
	if err != nil {
		t.Fatalf("expected degraded answer, got error: %v", err)
	}

	if len(resp.Products) != 0 {
		t.Errorf("expected no products after retrieval failure, got %d", len(resp.Products))
	}

	if !resp.NeedsClarification {
		t.Error("expected clarification flag for a clarifying reply")
	}
}

func TestAnswerGenerationFailure(t *testing.T) {
	mockGen := &mockGenerator{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return nil, fmt.Errorf("model overloaded")
		},
	}

	assistant := New(&mockRetriever{}, mockGen)

	if _, err := assistant.Answer(context.Background(), AnswerRequest{Query: "dry hair"}); err == nil {
		t.Error("expected generation failure to propagate")
	}
}

func TestAnswerTrimsConversationHistory(t *testing.T) {
	history := make([]Message, 10)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}

		history[i] = Message{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	mockGen := &mockGenerator{
		generateTextFunc: func(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			// 6 history turns + the current query
			if len(req.Messages) != 7 {
				t.Errorf("expected 7 messages, got %d", len(req.Messages))
			}

			// oldest turns dropped first
			if req.Messages[0].Content != "turn 4" {
				t.Errorf("expected window to start at turn 4, got %q", req.Messages[0].Content)
			}

			return &llm.TextGenerationResponse{Text: "ok"}, nil
		},
	}

	assistant := New(&mockRetriever{}, mockGen)

	if _, err := assistant.Answer(context.Background(), AnswerRequest{
		Query:               "and now?",
		ConversationHistory: history,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestTrailingWindow(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
		{Role: "user", Content: "c"},
	}

	if got := trailingWindow(history, 5); len(got) != 3 {
		t.Errorf("expected full history when shorter than window, got %d", len(got))
	}

	got := trailingWindow(history, 2)
	if len(got) != 2 || got[0].Content != "b" {
		t.Errorf("expected last two turns, got %+v", got)
	}
}
