package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "valid explicit config",
			config: Config{
				Provider: "openai",
				Providers: map[string]ProviderConfig{
					"openai": {BaseURL: DefaultOpenAIURL, APIKey: "sk-test", Model: "gpt-4o-mini"},
				},
			},
			wantErr: false,
		},
		{
			name: "selected provider missing from providers map",
			config: Config{
				Provider: "claude",
				Providers: map[string]ProviderConfig{
					"openai": {APIKey: "sk-test"},
				},
			},
			wantErr: true,
		},
		{
			name: "bad output format",
			config: Config{
				Output: OutputConfig{Format: "pdf"},
			},
			wantErr: true,
		},
		{
			name: "negative max_text_length",
			config: Config{
				Limits: LimitsConfig{MaxTextLength: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Provider != "lmstudio" {
		t.Errorf("Provider = %v, want lmstudio", cfg.Provider)
	}
	if cfg.Limits.MaxTextLength != 100000 {
		t.Errorf("MaxTextLength = %v, want 100000", cfg.Limits.MaxTextLength)
	}
	if cfg.Limits.ChunkSize != 10000 {
		t.Errorf("ChunkSize = %v, want 10000", cfg.Limits.ChunkSize)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Performance.ChunkWorkers != 2 {
		t.Errorf("ChunkWorkers = %v, want 2", cfg.Performance.ChunkWorkers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Output.Format = %v, want markdown", cfg.Output.Format)
	}
	if cfg.Providers["lmstudio"].BaseURL != DefaultLMStudioURL {
		t.Errorf("lmstudio BaseURL = %v, want %v", cfg.Providers["lmstudio"].BaseURL, DefaultLMStudioURL)
	}
}

func TestProviderKeys(t *testing.T) {
	tests := []struct {
		name string
		pc   ProviderConfig
		want int
	}{
		{"list preferred over single", ProviderConfig{APIKey: "a", APIKeys: []string{"b", "c"}}, 2},
		{"single key", ProviderConfig{APIKey: "a"}, 1},
		{"no keys", ProviderConfig{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.pc.Keys()); got != tt.want {
				t.Errorf("Keys() count = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
provider: "openai"

providers:
  openai:
    base_url: "https://api.openai.com/v1"
    api_key: "sk-test"
    model: "gpt-4o-mini"
  gemini:
    api_keys: ["k1", "k2"]
    model: "gemini-2.5-flash"

output:
  dir: "summaries"

limits:
  max_text_length: 50000
  chunk_size: 5000

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %v, want openai", cfg.Provider)
	}
	if cfg.Providers["openai"].APIKey != "sk-test" {
		t.Errorf("APIKey = %v, want sk-test", cfg.Providers["openai"].APIKey)
	}
	if got := cfg.Providers["gemini"].Keys(); len(got) != 2 {
		t.Errorf("gemini Keys() count = %v, want 2", len(got))
	}
	if cfg.Output.Dir != "summaries" {
		t.Errorf("Output.Dir = %v, want summaries", cfg.Output.Dir)
	}
	if cfg.Limits.MaxTextLength != 50000 {
		t.Errorf("MaxTextLength = %v, want 50000", cfg.Limits.MaxTextLength)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent default = %v, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Provider != "lmstudio" {
		t.Errorf("Provider = %v, want lmstudio", cfg.Provider)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Output.Dir = "out"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Output.Dir != "out" {
		t.Errorf("Output.Dir = %v, want out", loaded.Output.Dir)
	}
	if loaded.Provider != cfg.Provider {
		t.Errorf("Provider = %v, want %v", loaded.Provider, cfg.Provider)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(*Config) bool
		wantErr bool
	}{
		{
			name:  "top-level string",
			key:   "provider",
			value: "openai",
			check: func(c *Config) bool { return c.Provider == "openai" },
		},
		{
			name:  "nested int",
			key:   "limits.chunk_size",
			value: "2500",
			check: func(c *Config) bool { return c.Limits.ChunkSize == 2500 },
		},
		{
			name:  "provider field",
			key:   "providers.openai.api_key",
			value: "sk-new",
			check: func(c *Config) bool { return c.Providers["openai"].APIKey == "sk-new" },
		},
		{
			name:    "invalid resulting config",
			key:     "output.format",
			value:   "pdf",
			wantErr: true,
		},
		{
			name:    "empty key",
			key:     "",
			value:   "x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply", tt.key, tt.value)
			}
		})
	}
}

func TestActiveProvider(t *testing.T) {
	cfg := Default()

	name, pc, err := cfg.ActiveProvider("")
	if err != nil {
		t.Fatalf("ActiveProvider() error = %v", err)
	}
	if name != "lmstudio" || pc.BaseURL != DefaultLMStudioURL {
		t.Errorf("ActiveProvider() = %v, %v", name, pc.BaseURL)
	}

	name, _, err = cfg.ActiveProvider("gemini")
	if err != nil {
		t.Fatalf("ActiveProvider(gemini) error = %v", err)
	}
	if name != "gemini" {
		t.Errorf("name = %v, want gemini", name)
	}

	if _, _, err := cfg.ActiveProvider("missing"); err == nil {
		t.Error("ActiveProvider(missing) should return error")
	}
}
