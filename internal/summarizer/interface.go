package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/caption-digest/internal/llm"
)

// Request describes one summarization job. Addressing fields left empty
// fall back to configuration defaults.
type Request struct {
	InputPath    string
	OutputPath   string // derived from InputPath when empty
	Template     string // "name" or "category:name"; "default" when empty
	Provider     string // provider name; the configured default when empty
	Language     string // code or full name; "en" when empty
	ExtraContext string // appended once to the prompt
	FullContext  bool   // keep timestamps and speakers in extracted text
	ForceText    bool   // skip format detection, parse as plain text
	Docx         bool   // write a Word document instead of markdown
	Options      llm.Options
}

// Summarizer turns subtitle and transcript files into summaries.
type Summarizer interface {
	// SummarizeFile processes one input file and returns the path of the
	// written artifact.
	SummarizeFile(ctx context.Context, req Request) (string, error)
	// Summarize generates a sanitized summary for already extracted
	// content without touching the filesystem.
	Summarize(ctx context.Context, content, prompt string, req Request) (string, error)
}
