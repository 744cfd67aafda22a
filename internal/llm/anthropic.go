package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the Anthropic Messages API URL.
const DefaultEndpoint = "https://api.anthropic.com/v1/messages"

const anthropicVersion = "2023-06-01"

// AnthropicClient calls the Anthropic Messages API with a fixed model
// and generation parameters.
type AnthropicClient struct {
	Endpoint   string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicClient builds a client for the given model.
func NewAnthropicClient(endpoint string, apiKey string, model string) *AnthropicClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &AnthropicClient{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Complete sends one prompt as a single user message and returns the
// first content block's text.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:       c.Model,
		MaxTokens:   1000,
		Temperature: 0.7,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &CallError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(data))
	if err != nil {
		return "", &CallError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &CallError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &CallError{Err: fmt.Errorf("Anthropic API returned status: %s", resp.Status)}
	}

	var llmResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", &CallError{Err: err}
	}

	if len(llmResp.Content) == 0 {
		return "", &CallError{Err: fmt.Errorf("empty response from Anthropic API")}
	}

	return llmResp.Content[0].Text, nil
}
