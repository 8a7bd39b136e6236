package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
)

var errAPIKeyRequired = errors.New("openai api key is required")

// Client talks to the OpenAI chat-completions API with function calling.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient initializes the chat client with the configured credentials.
func NewClient(ctx context.Context, cfg config.OpenAIConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("openai client initialized (%s)", cfg.Model))
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Message is a single chat turn in OpenAI wire format.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and raw JSON arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition advertises a callable function to the model.
type ToolDefinition struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}

// FunctionSchema describes a function's name and JSON-schema parameters.
type FunctionSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatResponse is the assistant turn returned by a completion call.
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []Message        `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

type chatResponseBody struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one completion request. Tool-call loops live in the
// caller; this method performs a single round trip.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, tools []ToolDefinition) (*ChatResponse, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, string(payload))
	}

	var decoded chatResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("chat completions returned no choices")
	}

	choice := decoded.Choices[0].Message
	return &ChatResponse{
		Content:   choice.Content,
		ToolCalls: choice.ToolCalls,
	}, nil
}
