package llm

import (
	"context"
	"strings"
	"time"
)

// Provider generates a completion for a prompt template and the content to
// substitute into it. Implementations must return a non-nil error on any
// failure; an empty result with a nil error is never valid.
type Provider interface {
	Generate(ctx context.Context, prompt, content string, opts Options) (string, error)
}

// Settings carries per-provider connection details from configuration.
type Settings struct {
	BaseURL string
	APIKey  string
	APIKeys []string
	Model   string
}

// Options tunes a single generation call. Zero values mean the defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
	DefaultTimeout     = 120 * time.Second
)

func (o Options) normalized() Options {
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// FormatPrompt substitutes content into the template's {content}
// placeholder. Templates without the placeholder get the content appended
// so it is never dropped.
func FormatPrompt(prompt, content string) string {
	if strings.Contains(prompt, "{content}") {
		return strings.ReplaceAll(prompt, "{content}", content)
	}
	return prompt + "\n\n" + content
}
