package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	geminiBaseURL            = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultGeminiChatModel   = "gemini-2.0-flash"
	defaultGeminiEmbedModel  = "text-embedding-004"
	geminiEmbeddingDimension = 768
	defaultMaxTokens         = 2048
	defaultTemperature       = 0.7
)

// shared HTTP client for Gemini API calls
// reuses connection pool and timeout configuration
var geminiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Gemini API calls (10 requests/second with burst capacity of 5)
var geminiRateLimiter = rate.NewLimiter(10, 5)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float32 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

type embedRequest struct {
	Content geminiContent `json:"content"`
}

type batchEmbedRequest struct {
	Requests []batchEmbedItem `json:"requests"`
}

type batchEmbedItem struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type embedding struct {
	Values []float32 `json:"values"`
}

type embedResponse struct {
	Embedding embedding `json:"embedding"`
}

type batchEmbedResponse struct {
	Embeddings []embedding `json:"embeddings"`
}

type GeminiConfig struct {
	APIKey      string
	Model       string  // e.g., "gemini-2.0-flash" or "text-embedding-004"
	MaxTokens   int     // max tokens for generated replies
	Temperature float32 // 0.0 to 1.0
}

type GeminiGenerator struct {
	config     GeminiConfig
	httpClient *http.Client
}

func NewGeminiGenerator(config GeminiConfig) *GeminiGenerator {
	if config.Model == "" {
		config.Model = defaultGeminiChatModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}

	return &GeminiGenerator{
		config:     config,
		httpClient: geminiHTTPClient,
	}
}

func (g *GeminiGenerator) Model() string {
	return g.config.Model
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	contents := make([]geminiContent, 0, len(req.Messages))

	for _, msg := range req.Messages {
		// Gemini uses "model" where our history uses "assistant"
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}

		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	reqBody := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     g.config.Temperature,
		},
	}

	if req.SystemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemPrompt}},
		}
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, g.config.Model)

	var apiResp generateResponse
	if err := g.post(ctx, url, reqBody, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(apiResp.Candidates[0].Content.Parts[0].Text),
		Usage: Usage{
			InputTokens:  apiResp.UsageMetadata.PromptTokenCount,
			OutputTokens: apiResp.UsageMetadata.CandidatesTokenCount,
		},
	}, nil
}

func (g *GeminiGenerator) post(ctx context.Context, url string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.config.APIKey)

	// rate limiting
	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type GeminiEmbedder struct {
	config     GeminiConfig
	httpClient *http.Client
}

func NewGeminiEmbedder(config GeminiConfig) *GeminiEmbedder {
	if config.Model == "" {
		config.Model = defaultGeminiEmbedModel
	}

	return &GeminiEmbedder{
		config:     config,
		httpClient: geminiHTTPClient, // use shared client with proper timeouts and connection pooling
	}
}

func (e *GeminiEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	reqBody := embedRequest{
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	url := fmt.Sprintf("%s/%s:embedContent", geminiBaseURL, e.config.Model)

	var embResp embedResponse
	if err := e.post(ctx, url, reqBody, &embResp); err != nil {
		return nil, err
	}

	if len(embResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return embResp.Embedding.Values, nil
}

func (e *GeminiEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	requests := make([]batchEmbedItem, len(texts))

	for i, text := range texts {
		requests[i] = batchEmbedItem{
			Model:   "models/" + e.config.Model,
			Content: geminiContent{Parts: []geminiPart{{Text: text}}},
		}
	}

	url := fmt.Sprintf("%s/%s:batchEmbedContents", geminiBaseURL, e.config.Model)

	var batchResp batchEmbedResponse
	if err := e.post(ctx, url, batchEmbedRequest{Requests: requests}, &batchResp); err != nil {
		return nil, err
	}

	if len(batchResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(batchResp.Embeddings))
	}

	embeddings := make([][]float32, len(batchResp.Embeddings))
	for i, emb := range batchResp.Embeddings {
		embeddings[i] = emb.Values
	}

	return embeddings, nil
}

func (e *GeminiEmbedder) post(ctx context.Context, url string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.config.APIKey)

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
