package config

import "fmt"

const (
	DefaultProvider      = "lmstudio"
	DefaultLMStudioURL   = "http://localhost:1234/v1"
	DefaultOpenAIURL     = "https://api.openai.com/v1"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultMaxTextLength = 100000
	DefaultChunkSize     = 10000
)

type Config struct {
	Provider    string                    `yaml:"provider"`
	Providers   map[string]ProviderConfig `yaml:"providers"`
	Output      OutputConfig              `yaml:"output"`
	Limits      LimitsConfig              `yaml:"limits"`
	Performance PerformanceConfig         `yaml:"performance"`
	Logging     LoggingConfig             `yaml:"logging"`
	Templates   TemplatesConfig           `yaml:"templates"`
	Watch       WatchConfig               `yaml:"watch"`
}

type ProviderConfig struct {
	BaseURL string   `yaml:"base_url,omitempty"`
	APIKey  string   `yaml:"api_key,omitempty"`
	APIKeys []string `yaml:"api_keys,omitempty"`
	Model   string   `yaml:"model,omitempty"`
}

// Keys returns every configured API key, preferring the api_keys list
// and falling back to the single api_key value.
func (p ProviderConfig) Keys() []string {
	if len(p.APIKeys) > 0 {
		return p.APIKeys
	}
	if p.APIKey != "" {
		return []string{p.APIKey}
	}
	return nil
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type LimitsConfig struct {
	MaxTextLength int `yaml:"max_text_length"`
	ChunkSize     int `yaml:"chunk_size"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	ChunkWorkers  int `yaml:"chunk_workers"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type TemplatesConfig struct {
	File string `yaml:"file"`
}

type WatchConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Provider: DefaultProvider,
		Providers: map[string]ProviderConfig{
			"lmstudio": {
				BaseURL: DefaultLMStudioURL,
				APIKey:  "lm-studio",
			},
			"openai": {
				BaseURL: DefaultOpenAIURL,
				Model:   "gpt-4o-mini",
			},
			"gemini": {
				Model: DefaultGeminiModel,
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	if _, ok := c.Providers["lmstudio"]; !ok {
		c.Providers["lmstudio"] = ProviderConfig{
			BaseURL: DefaultLMStudioURL,
			APIKey:  "lm-studio",
		}
	}
	if _, ok := c.Providers[c.Provider]; !ok {
		return fmt.Errorf("provider %q has no entry under providers", c.Provider)
	}

	if c.Output.Format == "" {
		c.Output.Format = "markdown"
	}
	if c.Output.Format != "markdown" && c.Output.Format != "docx" {
		return fmt.Errorf("output.format must be markdown or docx, got %q", c.Output.Format)
	}

	if c.Limits.MaxTextLength == 0 {
		c.Limits.MaxTextLength = DefaultMaxTextLength
	}
	if c.Limits.MaxTextLength < 0 {
		return fmt.Errorf("limits.max_text_length must be positive")
	}
	if c.Limits.ChunkSize == 0 {
		c.Limits.ChunkSize = DefaultChunkSize
	}
	if c.Limits.ChunkSize < 0 {
		return fmt.Errorf("limits.chunk_size must be positive")
	}
	if c.Limits.ChunkSize > c.Limits.MaxTextLength {
		c.Limits.ChunkSize = c.Limits.MaxTextLength
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.ChunkWorkers == 0 {
		c.Performance.ChunkWorkers = 2
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// ActiveProvider returns the settings for the selected provider, or for
// name when it is non-empty (CLI --provider override).
func (c *Config) ActiveProvider(name string) (string, ProviderConfig, error) {
	if name == "" {
		name = c.Provider
	}
	pc, ok := c.Providers[name]
	if !ok {
		return "", ProviderConfig{}, fmt.Errorf("provider %q has no entry under providers", name)
	}
	return name, pc, nil
}
