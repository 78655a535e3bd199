package summarizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatMarkdown renders the summary document: a heading naming the
// source file, a source metadata line, a rule, then the summary body.
func FormatMarkdown(sourcePath, summary string) string {
	name := filepath.Base(sourcePath)
	return fmt.Sprintf("# Summary: %s\n\n**Source File:** `%s`\n\n---\n\n%s\n", name, name, summary)
}

// ExtractSummary recovers the summary body from a rendered markdown
// document: everything after the first horizontal rule, or after the
// first line when no rule is present.
func ExtractSummary(document string) string {
	if _, body, ok := strings.Cut(document, "---"); ok {
		return strings.TrimSpace(body)
	}
	if _, rest, ok := strings.Cut(document, "\n"); ok {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(document)
}

// WriteMarkdown writes the rendered summary to outputPath, creating
// parent directories as needed.
func WriteMarkdown(outputPath, sourcePath, summary string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(FormatMarkdown(sourcePath, summary)), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
