package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

const defaultOpenAIModel = "gpt-4o-mini"

type implOpenAI struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI requires an API key. A custom base URL pointed at any
// OpenAI-compatible gateway works as well.
func NewOpenAI(settings Settings, log logger.Logger) (Provider, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires api_key")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if settings.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(settings.BaseURL))
	}

	model := settings.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &implOpenAI{
		client: openai.NewClient(clientOpts...),
		model:  model,
		logger: log,
	}, nil
}

func (p *implOpenAI) Generate(ctx context.Context, prompt, content string, opts Options) (string, error) {
	opts = opts.normalized()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(FormatPrompt(prompt, content)),
		},
		Model:       p.model,
		Temperature: openai.Float(opts.Temperature),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("%w: %s", ErrBadResponse, statusHint(apierr.StatusCode))
		}
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrBadResponse)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrBadResponse)
	}
	return text, nil
}
