package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const messagesURL = "https://api.anthropic.com/v1/messages"

// Client is the language model interface. Tests replace it with a
// fake.
type Client interface {
	Complete(ctx context.Context, request MessagesRequest) (MessagesResponse, error)
}

// MessagesRequest is a request to the Anthropic Messages API.
type MessagesRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []Message        `json:"messages"`
	Tools     []ToolDefinition `json:"tools,omitempty"`
}

// Message is one conversation turn. Content is a list of blocks so
// that tool calls and tool results can be represented.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one part of a message: text, a tool call by the
// model, or a tool result sent back to it.
type ContentBlock struct {
	Type string `json:"type"`

	// type: text
	Text string `json:"text,omitempty"`

	// type: tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type: tool_result
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// MessagesResponse is a response from the Anthropic Messages API.
type MessagesResponse struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// anthropicClient calls the Anthropic Messages API over HTTP.
type anthropicClient struct {
	httpClient *http.Client
	apiKey     string
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient(apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	return &anthropicClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *anthropicClient) Complete(ctx context.Context, request MessagesRequest) (MessagesResponse, error) {
	jsonBody, err := json.Marshal(request)
	if err != nil {
		return MessagesResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesURL, strings.NewReader(string(jsonBody)))
	if err != nil {
		return MessagesResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MessagesResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return MessagesResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return MessagesResponse{}, fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response MessagesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return MessagesResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return response, nil
}
