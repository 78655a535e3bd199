package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

// Factory builds a Provider from its configured settings.
type Factory func(settings Settings, log logger.Logger) (Provider, error)

// Registry maps provider names to factories. It is an explicit value
// constructed at startup and handed to whoever needs providers; there is
// no package-level registration.
type Registry struct {
	factories map[string]Factory
	logger    logger.Logger
}

// NewRegistry creates a Registry with the built-in providers registered:
// lmstudio, openai, gemini.
func NewRegistry(log logger.Logger) *Registry {
	r := &Registry{
		factories: map[string]Factory{},
		logger:    log,
	}
	r.Register("lmstudio", NewLMStudio)
	r.Register("openai", NewOpenAI)
	r.Register("gemini", NewGemini)
	return r
}

// Register adds or replaces a provider factory under name.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[strings.ToLower(name)] = factory
}

// Get builds the named provider with the given settings.
func (r *Registry) Get(name string, settings Settings) (Provider, error) {
	factory, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q, available: %s", name, strings.Join(r.List(), ", "))
	}

	p, err := factory(settings, r.logger)
	if err != nil {
		return nil, fmt.Errorf("configure provider %q: %w", name, err)
	}
	return p, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
