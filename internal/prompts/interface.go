package prompts

// Manager resolves, lists, and persists prompt templates.
//
// Templates are addressed by reference: a bare name ("detailed") looks up
// flat templates, "category:name" ("short:concise") looks inside a
// category, and an empty reference means "default". User-saved templates
// shadow built-ins of the same name; built-ins remain as fallback.
type Manager interface {
	Get(ref string) (string, error)
	Save(ref, prompt string) error
	Delete(ref string) error
	Categories() []string
	TemplatesIn(category string) []string
	Names() []string
	InitDefaults() error
	Path() string
}
