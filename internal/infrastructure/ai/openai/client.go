// Package openai provides OpenAI API integration for chat, embeddings
// and recipe image generation
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

// Client implements the AIService interface using the OpenAI API
type Client struct {
	apiKey         string
	baseURL        string
	embeddingModel string
	imageModel     string
	client         *http.Client
	metrics        *monitoring.MetricsCollector
	logger         *zap.Logger
}

// NewClient creates a new OpenAI client
func NewClient(cfg config.AIConfig, metrics *monitoring.MetricsCollector, logger *zap.Logger) *Client {
	if cfg.OpenAIKey == "" {
		logger.Warn("OpenAI API key not configured, AI calls will fail")
	}
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Client{
		apiKey:         cfg.OpenAIKey,
		baseURL:        baseURL,
		embeddingModel: cfg.EmbeddingModel,
		imageModel:     cfg.ImageModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// observe records one upstream call on the ai_requests metrics.
func (c *Client) observe(model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.AIRequest("openai", model, status, time.Since(start))
}

// OpenAI API structures
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Complete runs a chat completion and returns the assistant's message.
func (c *Client) Complete(ctx context.Context, req outbound.CompletionRequest) (out string, err error) {
	start := time.Now()
	defer func() { c.observe(req.Model, start, err) }()

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var result chatCompletionResponse
	if err = c.post(ctx, "/chat/completions", body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.NewExternalServiceError("openai", fmt.Errorf("empty completion response"))
	}

	c.logger.Debug("chat completion finished",
		zap.String("model", req.Model),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)
	return result.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for a text.
func (c *Client) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { c.observe(c.embeddingModel, start, err) }()

	body := embeddingRequest{
		Model: c.embeddingModel,
		Input: []string{text},
	}
	var result embeddingResponse
	if err = c.post(ctx, "/embeddings", body, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, errors.NewExternalServiceError("openai", fmt.Errorf("empty embedding response"))
	}
	return result.Data[0].Embedding, nil
}

// GenerateImage creates a 1024x1024 image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (url string, err error) {
	start := time.Now()
	defer func() { c.observe(c.imageModel, start, err) }()

	body := imageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}
	var result imageResponse
	if err = c.post(ctx, "/images/generations", body, &result); err != nil {
		return "", err
	}
	if len(result.Data) == 0 {
		return "", errors.NewExternalServiceError("openai", fmt.Errorf("empty image response"))
	}
	return result.Data[0].URL, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.NewExternalServiceError("openai", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("openai request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return errors.NewExternalServiceError("openai", fmt.Errorf("status %d", resp.StatusCode))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ outbound.AIService = (*Client)(nil)
