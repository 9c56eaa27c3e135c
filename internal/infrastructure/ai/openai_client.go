package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appai "github.com/smartbiz/backend/internal/application/ai"
	"github.com/smartbiz/backend/internal/infrastructure/config"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// systemPrompt frames the assistant for business-operations questions
const systemPrompt = "You are a business assistant for a small retail operation. " +
	"Answer questions about inventory, sales and purchasing using only the data provided. " +
	"Be concise and practical."

// OpenAIClient implements CompletionClient against an OpenAI-compatible
// chat completions endpoint
type OpenAIClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient creates a new completion client from configuration
func NewOpenAIClient(cfg *config.AIConfig) *OpenAIClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the prompt to the chat completions endpoint and returns the
// reply together with the token count the provider billed for the call
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, int, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("ai: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("ai: failed to read response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", 0, fmt.Errorf("ai: failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", 0, fmt.Errorf("ai: provider error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", 0, fmt.Errorf("ai: provider returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", 0, fmt.Errorf("ai: provider returned no choices")
	}

	return parsed.Choices[0].Message.Content, parsed.Usage.TotalTokens, nil
}

// Ensure OpenAIClient implements CompletionClient
var _ appai.CompletionClient = (*OpenAIClient)(nil)
