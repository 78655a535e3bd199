package main

import (
	"strings"
	"sync"

	"github.com/nguyentantai21042004/caption-digest/internal/config"
	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/internal/logger"
	"github.com/nguyentantai21042004/caption-digest/internal/processor"
	"github.com/nguyentantai21042004/caption-digest/internal/prompts"
	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
)

// commandContext shares the lazily loaded configuration and logger
// between commands.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     logger.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

// ensureConfig loads the config file once. --config selects the file; a
// missing file falls back to the built-in defaults.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.LoadOrDefault(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.Logging.Level
		if *c.verboseFlag {
			level = "debug"
		}
		c.config = cfg
		c.logger = logger.New(level)
	})
	return c.config, c.configErr
}

// configPath resolves the config file location the commands operate on.
func (c *commandContext) configPath() (string, error) {
	if path := strings.TrimSpace(*c.configFlag); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// templateManager builds the prompt template store for the templates
// subcommands.
func (c *commandContext) templateManager() (prompts.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path, err := cfg.TemplatesFile()
	if err != nil {
		return nil, err
	}
	return prompts.New(path, c.logger), nil
}

// pipeline bundles the wired processing stack behind the summarize,
// watch and rename commands.
type pipeline struct {
	cfg        *config.Config
	log        logger.Logger
	registry   *llm.Registry
	templates  prompts.Manager
	summarizer summarizer.Summarizer
	processor  processor.Processor
}

func (c *commandContext) buildPipeline() (*pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	templatesPath, err := cfg.TemplatesFile()
	if err != nil {
		return nil, err
	}

	registry := llm.NewRegistry(c.logger)
	templates := prompts.New(templatesPath, c.logger)
	sum := summarizer.New(cfg, registry, templates, c.logger)

	return &pipeline{
		cfg:        cfg,
		log:        c.logger,
		registry:   registry,
		templates:  templates,
		summarizer: sum,
		processor:  processor.New(cfg, sum, c.logger),
	}, nil
}

// provider resolves the named provider, or the configured default for an
// empty name, into a ready client.
func (p *pipeline) provider(name string) (llm.Provider, error) {
	resolved, pc, err := p.cfg.ActiveProvider(name)
	if err != nil {
		return nil, err
	}
	return p.registry.Get(resolved, llm.Settings{
		BaseURL: pc.BaseURL,
		APIKey:  pc.APIKey,
		APIKeys: pc.Keys(),
		Model:   pc.Model,
	})
}
