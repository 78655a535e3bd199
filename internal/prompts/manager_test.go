package prompts

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/caption-digest/internal/logger"
)

func testManager(t *testing.T) (Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	return New(path, logger.New("error")), path
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref          string
		wantCategory string
		wantName     string
	}{
		{"detailed", "", "detailed"},
		{"short:concise", "short", "concise"},
		{"short:", "short", "default"},
		{"a:b:c", "a", "b:c"},
		{"", "", ""},
	}

	for _, tt := range tests {
		category, name := splitRef(tt.ref)
		if category != tt.wantCategory || name != tt.wantName {
			t.Errorf("splitRef(%q) = (%q, %q), want (%q, %q)",
				tt.ref, category, name, tt.wantCategory, tt.wantName)
		}
	}
}

func TestGetBuiltins(t *testing.T) {
	m, _ := testManager(t)

	tests := []struct {
		name    string
		ref     string
		wantErr string
	}{
		{name: "empty ref is default", ref: ""},
		{name: "flat default", ref: "default"},
		{name: "flat detailed", ref: "detailed"},
		{name: "flat brief", ref: "brief"},
		{name: "category default", ref: "short:default"},
		{name: "category named", ref: "short:concise"},
		{name: "category only", ref: "long:"},
		{name: "blog technical", ref: "blog:technical"},
		{name: "unknown flat", ref: "nope", wantErr: `prompt template "nope" not found`},
		{name: "unknown in category", ref: "short:nope", wantErr: `template "nope" not found in category "short"`},
		{name: "unknown category", ref: "medium:default", wantErr: `category "medium" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := m.Get(tt.ref)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Get(%q) error = nil, want %q", tt.ref, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Get(%q) error = %q, want substring %q", tt.ref, err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.ref, err)
			}
			if !strings.Contains(tmpl, "{content}") {
				t.Errorf("Get(%q) has no {content} placeholder", tt.ref)
			}
		})
	}
}

func TestSaveAndGet(t *testing.T) {
	m, path := testManager(t)

	if err := m.Save("mine", "Custom prompt:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Save("short:punchy", "One line only:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Reload from disk to prove persistence.
	m2 := New(path, logger.New("error"))

	got, err := m2.Get("mine")
	if err != nil {
		t.Fatalf("Get(mine) error = %v", err)
	}
	if got != "Custom prompt:\n{content}" {
		t.Errorf("Get(mine) = %q, want saved template", got)
	}

	got, err = m2.Get("short:punchy")
	if err != nil {
		t.Fatalf("Get(short:punchy) error = %v", err)
	}
	if got != "One line only:\n{content}" {
		t.Errorf("Get(short:punchy) = %q, want saved template", got)
	}

	// Built-ins in the same category still resolve.
	if _, err := m2.Get("short:concise"); err != nil {
		t.Errorf("Get(short:concise) error = %v, want builtin fallback", err)
	}
}

func TestSaveShadowsBuiltin(t *testing.T) {
	m, _ := testManager(t)

	if err := m.Save("default", "Override:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := m.Get("default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Override:\n{content}" {
		t.Errorf("Get(default) = %q, want user override", got)
	}

	if err := m.Save("short:default", "Short override:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = m.Get("short:default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Short override:\n{content}" {
		t.Errorf("Get(short:default) = %q, want user override", got)
	}
}

func TestSaveValidation(t *testing.T) {
	m, _ := testManager(t)

	tests := []struct {
		name   string
		ref    string
		prompt string
	}{
		{name: "empty ref", ref: "", prompt: "x {content}"},
		{name: "blank ref", ref: "   ", prompt: "x {content}"},
		{name: "leading colon", ref: ":name", prompt: "x {content}"},
		{name: "empty body", ref: "mine", prompt: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Save(tt.ref, tt.prompt); err == nil {
				t.Errorf("Save(%q, %q) error = nil, want error", tt.ref, tt.prompt)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	m, _ := testManager(t)

	if err := m.Save("mine", "X:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Delete("mine"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get("mine"); err == nil {
		t.Error("Get(mine) after delete error = nil, want not found")
	}

	// Deleting an override restores the built-in.
	if err := m.Save("short:default", "Override:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Delete("short:default"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := m.Get("short:default")
	if err != nil {
		t.Fatalf("Get(short:default) error = %v", err)
	}
	if got == "Override:\n{content}" {
		t.Error("Get(short:default) still returns deleted override")
	}

	// Built-ins themselves are not deletable.
	if err := m.Delete("brief"); err == nil || !strings.Contains(err.Error(), "built in") {
		t.Errorf("Delete(brief) error = %v, want built-in refusal", err)
	}
	if err := m.Delete("blog:technical"); err == nil || !strings.Contains(err.Error(), "built in") {
		t.Errorf("Delete(blog:technical) error = %v, want built-in refusal", err)
	}
	if err := m.Delete("ghost"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Delete(ghost) error = %v, want not found", err)
	}
}

func TestLists(t *testing.T) {
	m, _ := testManager(t)

	if got, want := m.Categories(), []string{"blog", "long", "short"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if got, want := m.TemplatesIn("short"), []string{"concise", "default"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TemplatesIn(short) = %v, want %v", got, want)
	}
	if got, want := m.Names(), []string{"brief", "default", "detailed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if err := m.Save("review:default", "Review:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Save("mine", "Mine:\n{content}"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got, want := m.Categories(), []string{"blog", "long", "review", "short"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if got, want := m.Names(), []string{"brief", "default", "detailed", "mine"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestInitDefaults(t *testing.T) {
	m, path := testManager(t)

	if err := m.InitDefaults(); err != nil {
		t.Fatalf("InitDefaults() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("templates file not written: %v", err)
	}

	m2 := New(path, logger.New("error"))
	got, err := m2.Get("long:structured")
	if err != nil {
		t.Fatalf("Get(long:structured) error = %v", err)
	}
	if got != defaultCategories["long"]["structured"] {
		t.Errorf("persisted template differs from builtin")
	}
}

func TestNewMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("categories: [not, a, map]"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	m := New(path, logger.New("error"))
	if _, err := m.Get("default"); err != nil {
		t.Errorf("Get(default) error = %v, want builtin fallback", err)
	}
}
