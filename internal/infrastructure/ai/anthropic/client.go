// Package anthropic provides a minimal Anthropic Messages API client
// used by the preference entry validator
package anthropic

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
	"github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const apiVersion = "2023-06-01"

// Client calls the Anthropic Messages API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewClient creates a new Anthropic client.
func NewClient(cfg config.AIConfig, metrics *monitoring.MetricsCollector, logger *zap.Logger) *Client {
	if cfg.AnthropicKey == "" {
		logger.Warn("Anthropic API key not configured, entry validation falls back to the local knowledge base")
	}
	return &Client{
		apiKey:  cfg.AnthropicKey,
		baseURL: "https://api.anthropic.com/v1",
		model:   cfg.AnthropicModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Available reports whether the client has credentials to make calls.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Message sends a single user prompt and returns the text response.
func (c *Client) Message(ctx context.Context, prompt string, maxTokens int) (out string, err error) {
	if c.apiKey == "" {
		return "", errors.NewExternalServiceError("anthropic", fmt.Errorf("api key not configured"))
	}
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.AIRequest("anthropic", c.model, status, time.Since(start))
	}()

	body := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewExternalServiceError("anthropic", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("anthropic request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return "", errors.NewExternalServiceError("anthropic", fmt.Errorf("status %d", resp.StatusCode))
	}

	var result messagesResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Content) == 0 {
		return "", errors.NewExternalServiceError("anthropic", fmt.Errorf("empty message response"))
	}
	return result.Content[0].Text, nil
}
