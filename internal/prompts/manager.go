package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// splitRef splits "category:name" on the first colon. A bare reference
// has an empty category; an empty name inside a category means "default".
func splitRef(ref string) (category, name string) {
	if i := strings.Index(ref, ":"); i >= 0 {
		category, name = ref[:i], ref[i+1:]
		if name == "" {
			name = "default"
		}
		return category, name
	}
	return "", ref
}

func (m *implManager) Get(ref string) (string, error) {
	category, name := splitRef(ref)

	if category != "" {
		if tmpl, ok := m.categories[category][name]; ok {
			return tmpl, nil
		}
		if tmpl, ok := defaultCategories[category][name]; ok {
			return tmpl, nil
		}
		if _, ok := m.categories[category]; ok {
			return "", fmt.Errorf("template %q not found in category %q", name, category)
		}
		if _, ok := defaultCategories[category]; ok {
			return "", fmt.Errorf("template %q not found in category %q", name, category)
		}
		return "", fmt.Errorf("category %q not found", category)
	}

	if name == "" {
		name = "default"
	}
	if tmpl, ok := m.custom[name]; ok {
		return tmpl, nil
	}
	if tmpl, ok := defaultPrompts[name]; ok {
		return tmpl, nil
	}
	return "", fmt.Errorf("prompt template %q not found", name)
}

func (m *implManager) Save(ref, prompt string) error {
	if strings.TrimSpace(ref) == "" || strings.HasPrefix(ref, ":") {
		return fmt.Errorf("template reference must not be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("template body must not be empty")
	}

	category, name := splitRef(ref)
	if category != "" {
		if m.categories[category] == nil {
			m.categories[category] = map[string]string{}
		}
		m.categories[category][name] = prompt
	} else {
		m.custom[name] = prompt
	}
	return m.persist()
}

func (m *implManager) Delete(ref string) error {
	category, name := splitRef(ref)

	if category != "" {
		if _, ok := m.categories[category][name]; !ok {
			if _, builtin := defaultCategories[category][name]; builtin {
				return fmt.Errorf("template %q is built in and cannot be deleted", ref)
			}
			return fmt.Errorf("template %q not found", ref)
		}
		delete(m.categories[category], name)
		if len(m.categories[category]) == 0 {
			delete(m.categories, category)
		}
		return m.persist()
	}

	if _, ok := m.custom[name]; !ok {
		if _, builtin := defaultPrompts[name]; builtin {
			return fmt.Errorf("template %q is built in and cannot be deleted", ref)
		}
		return fmt.Errorf("template %q not found", ref)
	}
	delete(m.custom, name)
	return m.persist()
}

func (m *implManager) Categories() []string {
	seen := map[string]bool{}
	for c := range m.categories {
		seen[c] = true
	}
	for c := range defaultCategories {
		seen[c] = true
	}
	return sortedKeys(seen)
}

func (m *implManager) TemplatesIn(category string) []string {
	seen := map[string]bool{}
	for name := range m.categories[category] {
		seen[name] = true
	}
	for name := range defaultCategories[category] {
		seen[name] = true
	}
	return sortedKeys(seen)
}

func (m *implManager) Names() []string {
	seen := map[string]bool{}
	for name := range m.custom {
		seen[name] = true
	}
	for name := range defaultPrompts {
		seen[name] = true
	}
	return sortedKeys(seen)
}

// InitDefaults writes every built-in template into the store file so
// users have a concrete starting point to edit.
func (m *implManager) InitDefaults() error {
	for category, templates := range defaultCategories {
		if m.categories[category] == nil {
			m.categories[category] = map[string]string{}
		}
		for name, tmpl := range templates {
			if _, ok := m.categories[category][name]; !ok {
				m.categories[category][name] = tmpl
			}
		}
	}
	return m.persist()
}

func (m *implManager) Path() string {
	return m.path
}

func (m *implManager) persist() error {
	data, err := yaml.Marshal(storeFile{
		Categories: m.categories,
		Custom:     m.custom,
	})
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create templates dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("write templates: %w", err)
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
