package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini accepts one or more API keys. Keys rotate automatically
// when Gemini reports a quota or rate-limit error.
func NewGemini(settings Settings, log logger.Logger) (Provider, error) {
	keys := settings.APIKeys
	if len(keys) == 0 && settings.APIKey != "" {
		keys = []string{settings.APIKey}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("gemini provider requires at least one api_key")
	}

	model := settings.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &implGemini{
		apiKeys: keys,
		model:   model,
		logger:  log,
	}, nil
}

func (p *implGemini) Generate(ctx context.Context, prompt, content string, opts Options) (string, error) {
	opts = opts.normalized()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	full := FormatPrompt(prompt, content)
	temp := float32(opts.Temperature)
	genCfg := &genai.GenerateContentConfig{Temperature: &temp}

	attempts := len(p.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := p.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			p.rotateFrom(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(full), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				p.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				p.rotateFrom(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: generate content: %v", ErrConnection, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return "", fmt.Errorf("%w: empty completion", ErrBadResponse)
			}
			return text, nil
		}

		return "", fmt.Errorf("%w: empty response from Gemini", ErrBadResponse)
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (p *implGemini) activeKey() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apiKeys[p.currentKey], p.currentKey
}

// rotateFrom advances past the key at idx. Concurrent calls that failed
// on the same key rotate it only once.
func (p *implGemini) rotateFrom(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentKey == idx {
		p.currentKey = (p.currentKey + 1) % len(p.apiKeys)
	}
}
