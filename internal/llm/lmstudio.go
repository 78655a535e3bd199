package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

const defaultLMStudioURL = "http://localhost:1234/v1"

type implLMStudio struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger.Logger
}

// NewLMStudio talks to any OpenAI-compatible chat completions endpoint,
// LM Studio's local server by default. When no model is configured, the
// first model reported by the endpoint is used.
func NewLMStudio(settings Settings, log logger.Logger) (Provider, error) {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultLMStudioURL
	}
	return &implLMStudio{
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  settings.APIKey,
		model:   settings.Model,
		client:  &http.Client{},
		logger:  log,
	}, nil
}

// normalizeBaseURL strips a trailing /v1 so configured URLs work with or
// without the version suffix.
func normalizeBaseURL(u string) string {
	u = strings.TrimRight(u, "/")
	return strings.TrimSuffix(u, "/v1")
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *implLMStudio) Generate(ctx context.Context, prompt, content string, opts Options) (string, error) {
	opts = opts.normalized()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	model := p.model
	if model == "" {
		model = p.defaultModel(ctx)
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: FormatPrompt(prompt, content)}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s unreachable: %v", ErrConnection, p.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrBadResponse, statusHint(resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode body: %v", ErrBadResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrBadResponse)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrBadResponse)
	}
	return text, nil
}

func statusHint(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "status 401: check the API key"
	case http.StatusNotFound:
		return "status 404: check the model name and base_url"
	case http.StatusTooManyRequests:
		return "status 429: rate limited, try again later"
	}
	return fmt.Sprintf("status %d", code)
}

// defaultModel asks the endpoint for its loaded models and picks the
// first one. Best effort; an empty model is sent when nothing answers.
func (p *implLMStudio) defaultModel(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/models", nil)
	if err != nil {
		return ""
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var parsed struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ""
	}
	if len(parsed.Data) == 0 {
		return ""
	}
	return parsed.Data[0].ID
}
