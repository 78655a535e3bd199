package prompts

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

type implManager struct {
	path       string
	categories map[string]map[string]string
	custom     map[string]string
	logger     logger.Logger
}

// New creates a Manager backed by the YAML file at path. A missing file
// is fine; built-in templates serve until something is saved. A file
// that cannot be read or parsed is logged and ignored the same way.
func New(path string, log logger.Logger) Manager {
	m := &implManager{
		path:       path,
		categories: map[string]map[string]string{},
		custom:     map[string]string{},
		logger:     log,
	}
	if err := m.load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(context.Background(), "Ignoring templates file %s: %v", path, err)
	}
	return m
}

type storeFile struct {
	Categories map[string]map[string]string `yaml:"categories,omitempty"`
	Custom     map[string]string            `yaml:"custom,omitempty"`
}

func (m *implManager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}

	var store storeFile
	if err := yaml.Unmarshal(data, &store); err != nil {
		return err
	}

	if store.Categories != nil {
		m.categories = store.Categories
	}
	if store.Custom != nil {
		m.custom = store.Custom
	}
	return nil
}
