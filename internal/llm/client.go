package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/model"
)

// Temperature is fixed at the most deterministic setting for every request.
const Temperature = 0.0

// Client calls an OpenAI-compatible /chat/completions endpoint (Groq by default).
// It is immutable after NewClient and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient validates cfg and returns a client. It does not touch the network.
// A blank API key yields a *model.ConfigError wrapping model.ErrMissingCredential.
// If httpClient is nil one is built from cfg.Timeout (zero means no timeout).
func NewClient(cfg config.LLMConfig, httpClient *http.Client) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &model.ConfigError{Field: "llm.api_key", Err: model.ErrMissingCredential}
	}
	if cfg.Model == "" {
		return nil, &model.ConfigError{Field: "llm.model", Err: errors.New("model identifier is empty")}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: httpClient,
	}, nil
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string { return c.model }

// BaseURL returns the endpoint root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// chatRequest mirrors the /chat/completions request body.
// Temperature has no omitempty: zero must reach the server.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// chatResponse mirrors the relevant fields of the completion response.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the reply text.
// Every failure is a *model.TransportError; nothing is retried.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &model.TransportError{Err: fmt.Errorf("marshal llm request: %w", err)}
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &model.TransportError{Err: fmt.Errorf("create llm request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.TransportError{Err: fmt.Errorf("llm request: %w", err)}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read llm response: %w", err)}
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(respBytes, &chatResp)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && chatResp.Error != nil {
			return "", &model.TransportError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("llm error (%s): %s", chatResp.Error.Type, chatResp.Error.Message),
			}
		}
		return "", &model.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("llm returned: %s", truncate(string(respBytes), 512))}
	}

	if decodeErr != nil {
		return "", &model.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("parse llm response: %w", decodeErr)}
	}
	if chatResp.Error != nil {
		return "", &model.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("llm error (%s): %s", chatResp.Error.Type, chatResp.Error.Message),
		}
	}
	if len(chatResp.Choices) == 0 {
		return "", &model.TransportError{StatusCode: resp.StatusCode, Err: errors.New("llm returned no choices")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
