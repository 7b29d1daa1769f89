package assistant

import (
	"context"
	"fmt"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/logger"
)

const (
	// products retrieved into the generation context
	defaultTopK = 5

	// only the trailing window of the conversation is relevant
	historyWindow = 6
)

func New(ret Retriever, generator llm.TextGenerator) *Assistant {
	return &Assistant{
		retriever: ret,
		generator: generator,
		topK:      defaultTopK,
	}
}

// Answer retrieves relevant products, renders them into the prompt context,
// and generates a reply. Retrieval failures degrade to an empty product
// context; only the generation call itself can fail the answer.
func (a *Assistant) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	ranked, err := a.retriever.Retrieve(ctx, req.Query, a.topK)
	if err != nil {
		logger.ErrorErr(err, "retrieval failed, answering without product context")
		ranked = nil
	}

	relevant := make([]products.Product, 0, len(ranked))
	for _, r := range ranked {
		relevant = append(relevant, r.Product)
	}

	systemPrompt := buildSystemPrompt(BuildContext(relevant))

	response, err := a.callGenerator(ctx, systemPrompt, req.Query, req.ConversationHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	return &AnswerResponse{
		Reply:              response.Text,
		Products:           relevant,
		NeedsClarification: NeedsClarification(response.Text),
		Model:              a.generator.Model(),
		InputTokens:        response.Usage.InputTokens,
		OutputTokens:       response.Usage.OutputTokens,
	}, nil
}

func (a *Assistant) callGenerator(ctx context.Context, systemPrompt, query string, history []Message) (*llm.TextGenerationResponse, error) {
	window := trailingWindow(history, historyWindow)

	llmMessages := make([]llm.Message, 0, len(window)+1)

	for _, msg := range window {
		llmMessages = append(llmMessages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	llmMessages = append(llmMessages, llm.Message{
		Role:    "user",
		Content: query,
	})

	return a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages:     llmMessages,
	})
}

// returns the last n turns of the history
func trailingWindow(history []Message, n int) []Message {
	if len(history) <= n {
		return history
	}

	return history[len(history)-n:]
}
