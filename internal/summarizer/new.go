package summarizer

import (
	"github.com/nguyentantai21042004/caption-digest/internal/config"
	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/internal/logger"
	"github.com/nguyentantai21042004/caption-digest/internal/prompts"
)

type implSummarizer struct {
	cfg       *config.Config
	providers *llm.Registry
	templates prompts.Manager
	logger    logger.Logger
}

// New creates a new Summarizer instance
func New(cfg *config.Config, providers *llm.Registry, templates prompts.Manager, log logger.Logger) Summarizer {
	return &implSummarizer{
		cfg:       cfg,
		providers: providers,
		templates: templates,
		logger:    log,
	}
}

// resolveProvider builds the provider for a request, falling back to the
// configured default when the request names none.
func (s *implSummarizer) resolveProvider(name string) (llm.Provider, error) {
	resolved, pc, err := s.cfg.ActiveProvider(name)
	if err != nil {
		return nil, err
	}
	return s.providers.Get(resolved, llm.Settings{
		BaseURL: pc.BaseURL,
		APIKey:  pc.APIKey,
		APIKeys: pc.Keys(),
		Model:   pc.Model,
	})
}
