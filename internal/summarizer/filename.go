package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/pkg/fileutil"
)

// Suggestions holds candidate names for the input file and its summary
// artifact.
type Suggestions struct {
	Original []string
	Output   []string
}

const suggestionCount = 5

const suggestionExcerptLen = 800

// SuggestFilenames asks the provider for descriptive replacement names
// based on the summary text. Suggested names keep the input's extension
// on the original side and the output's extension on the output side.
func SuggestFilenames(ctx context.Context, provider llm.Provider, inputPath, outputPath, summary string) (Suggestions, error) {
	excerpt := summary
	if len(excerpt) > suggestionExcerptLen {
		excerpt = excerpt[:suggestionExcerptLen] + "..."
	}

	inputName := filepath.Base(inputPath)
	outputName := filepath.Base(outputPath)
	prompt := suggestionPrompt(inputName, outputName, "Summary excerpt", excerpt)

	response, err := provider.Generate(ctx, prompt, "", llm.Options{MaxTokens: 500})
	if err != nil {
		return Suggestions{}, fmt.Errorf("suggest filenames: %w", err)
	}
	return parseSuggestions(response, inputName, outputName), nil
}

// SuggestFilenamesFromContent is the pre-summary variant used when only
// the raw file content is available.
func SuggestFilenamesFromContent(ctx context.Context, provider llm.Provider, inputPath, excerpt string) (Suggestions, error) {
	inputName := filepath.Base(inputPath)
	ext := filepath.Ext(inputName)
	outputName := strings.TrimSuffix(inputName, ext) + ".md"
	prompt := suggestionPrompt(inputName, outputName, "Content excerpt", excerpt)

	response, err := provider.Generate(ctx, prompt, "", llm.Options{MaxTokens: 500})
	if err != nil {
		return Suggestions{}, fmt.Errorf("suggest filenames: %w", err)
	}
	return parseSuggestions(response, inputName, outputName), nil
}

func suggestionPrompt(inputName, outputName, excerptLabel, excerpt string) string {
	ext := filepath.Ext(inputName)
	outExt := filepath.Ext(outputName)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following information, suggest 5 better filenames for both the original file and its summary file.\n\n")
	fmt.Fprintf(&b, "Original filename: %s\n", inputName)
	fmt.Fprintf(&b, "Output filename: %s\n", outputName)
	fmt.Fprintf(&b, "%s:\n%s\n\n", excerptLabel, excerpt)
	fmt.Fprintf(&b, "Please provide 5 filename suggestions for each file. The filenames should:\n")
	fmt.Fprintf(&b, "- Be descriptive and reflect the content\n")
	fmt.Fprintf(&b, "- Be valid filenames (no invalid characters like /, \\, :, *, ?, \", <, >, |)\n")
	fmt.Fprintf(&b, "- Be concise but meaningful\n")
	fmt.Fprintf(&b, "- Preserve the original file extension (%s) for the original file\n", ext)
	fmt.Fprintf(&b, "- Use %s extension for the output file\n\n", outExt)
	fmt.Fprintf(&b, "Format your response as JSON:\n")
	fmt.Fprintf(&b, "{\n")
	fmt.Fprintf(&b, "  \"original\": [\"filename1%s\", \"filename2%s\", \"filename3%s\", \"filename4%s\", \"filename5%s\"],\n", ext, ext, ext, ext, ext)
	fmt.Fprintf(&b, "  \"output\": [\"filename1%s\", \"filename2%s\", \"filename3%s\", \"filename4%s\", \"filename5%s\"]\n", outExt, outExt, outExt, outExt, outExt)
	fmt.Fprintf(&b, "}\n\n")
	fmt.Fprintf(&b, "If you cannot format as JSON, provide a numbered list:\n")
	fmt.Fprintf(&b, "Original file suggestions:\n1. filename1%s\n2. filename2%s\n3. filename3%s\n4. filename4%s\n5. filename5%s\n\n", ext, ext, ext, ext, ext)
	fmt.Fprintf(&b, "Output file suggestions:\n1. filename1%s\n2. filename2%s\n3. filename3%s\n4. filename4%s\n5. filename5%s\n", outExt, outExt, outExt, outExt, outExt)
	return b.String()
}

var (
	originalSectionRe = regexp.MustCompile(`(?is)(?:original|input|source).*?file.*?suggestions?:?\s*\n((?:\d+[.)\-\s]+\s*[^\n]+\n?){1,5})`)
	outputSectionRe   = regexp.MustCompile(`(?is)(?:output|summary).*?file.*?suggestions?:?\s*\n((?:\d+[.)\-\s]+\s*[^\n]+\n?){1,5})`)
	listItemRe        = regexp.MustCompile(`^\d+[.)\-\s]+\s*(.+)`)
)

// parseSuggestions reads suggestions out of an LLM response: a JSON
// object first, then a numbered-list fallback, padding with the current
// names when fewer than five survive. A response where neither strategy
// finds a single name comes back empty so callers can retry from other
// material.
func parseSuggestions(response, inputName, outputName string) Suggestions {
	inputExt := filepath.Ext(inputName)
	outputExt := filepath.Ext(outputName)

	var s Suggestions
	if raw := extractJSON(response); raw != "" {
		var parsed struct {
			Original []string `json:"original"`
			Output   []string `json:"output"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			s.Original = cleanSuggestions(parsed.Original, inputExt)
			s.Output = cleanSuggestions(parsed.Output, outputExt)
			if len(s.Original) > 0 && len(s.Output) > 0 {
				return s
			}
		}
	}

	if m := originalSectionRe.FindStringSubmatch(response); m != nil {
		s.Original = append(s.Original, parseNumberedList(m[1], inputExt)...)
	}
	if m := outputSectionRe.FindStringSubmatch(response); m != nil {
		s.Output = append(s.Output, parseNumberedList(m[1], outputExt)...)
	}
	if len(s.Original) == 0 && len(s.Output) == 0 {
		return s
	}

	for len(s.Original) < suggestionCount {
		s.Original = append(s.Original, inputName)
	}
	for len(s.Output) < suggestionCount {
		s.Output = append(s.Output, outputName)
	}
	return s
}

func parseNumberedList(block, ext string) []string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) > suggestionCount {
		lines = lines[:suggestionCount]
	}

	var out []string
	for _, line := range lines {
		m := listItemRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimRight(strings.TrimSpace(m[1]), ".,;:")
		name = fixExtension(name, ext)
		name = fileutil.SanitizeFileName(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func cleanSuggestions(names []string, ext string) []string {
	if len(names) > suggestionCount {
		names = names[:suggestionCount]
	}

	var out []string
	for _, name := range names {
		name = fileutil.SanitizeFileName(fixExtension(name, ext))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func fixExtension(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name + ext
}

// extractJSON pulls the first balanced JSON object out of text, honoring
// string literals and escapes while counting braces.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate
					}
					return ""
				}
			}
		}
	}
	return ""
}
