package summarizer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/internal/subtitle"
	"github.com/nguyentantai21042004/caption-digest/pkg/fileutil"
)

// SummarizeFile runs the whole pipeline for one input: parse, extract,
// length check, summarize, sanitize, write. Returns the artifact path.
func (s *implSummarizer) SummarizeFile(ctx context.Context, req Request) (string, error) {
	doc, err := subtitle.ParseFile(req.InputPath, subtitle.Options{ForceText: req.ForceText})
	if err != nil {
		return "", err
	}
	s.logger.Debug(ctx, "Parsed %s: %d entries (%s)", req.InputPath, len(doc.Entries), doc.Encoding)

	content := subtitle.Extract(doc, req.FullContext)

	if limit := s.cfg.Limits.MaxTextLength; len(content) > limit {
		return "", &ContentTooLongError{
			Length: len(content),
			Limit:  limit,
			File:   filepath.Base(req.InputPath),
		}
	}

	tmpl, err := s.templates.Get(req.Template)
	if err != nil {
		return "", fmt.Errorf("prompt template: %w", err)
	}

	summary, err := s.Summarize(ctx, content, tmpl, req)
	if err != nil {
		return "", err
	}

	docxMode := req.Docx || s.cfg.Output.Format == "docx"
	outputPath := req.OutputPath
	if outputPath == "" {
		ext := ".md"
		if docxMode {
			ext = ".docx"
		}
		outputPath = fileutil.OutputPath(req.InputPath, s.cfg.Output.Dir, ext)
	} else if strings.EqualFold(filepath.Ext(outputPath), ".docx") {
		docxMode = true
	}

	if docxMode {
		err = WriteDocx(outputPath, req.InputPath, summary)
	} else {
		err = WriteMarkdown(outputPath, req.InputPath, summary)
	}
	if err != nil {
		return "", err
	}
	return outputPath, nil
}

// Summarize generates a sanitized summary for extracted content. Content
// above the chunk threshold goes through map-reduce; everything else is a
// single provider call.
func (s *implSummarizer) Summarize(ctx context.Context, content, prompt string, req Request) (string, error) {
	provider, err := s.resolveProvider(req.Provider)
	if err != nil {
		return "", err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}
	languageName := LanguageName(language)

	enhanced := languageDirective(language, languageName) + prompt
	if req.ExtraContext != "" {
		enhanced += fmt.Sprintf("\n\nAdditional Context:\n%s\n", req.ExtraContext)
	}

	var summary string
	if len(content) > s.cfg.Limits.ChunkSize {
		summary, err = s.summarizeChunked(ctx, provider, content, enhanced, languageName, req.Options)
	} else {
		summary, err = s.generate(ctx, provider, enhanced, content, req.Options)
	}
	if err != nil {
		return "", err
	}
	return Sanitize(summary), nil
}

// summarizeChunked is the map-reduce path: each chunk is summarized with
// "chunk i of N" framing and sanitized, then one combine call merges the
// chunk summaries in source order. Chunk calls run concurrently, bounded
// by the configured worker count; the first failure cancels the rest.
func (s *implSummarizer) summarizeChunked(ctx context.Context, provider llm.Provider, content, enhancedPrompt, languageName string, opts llm.Options) (string, error) {
	chunks := Chunk(content, s.cfg.Limits.ChunkSize)
	s.logger.Info(ctx, "Content split into %d chunks", len(chunks))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.cfg.Performance.ChunkWorkers
	if workers < 1 {
		workers = 1
	}

	summaries := make([]string, len(chunks))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			chunkPrompt := fmt.Sprintf(
				"This is chunk %d of %d. Provide a summary focusing on the key points:\n\n%s",
				i+1, len(chunks), enhancedPrompt,
			)
			out, err := provider.Generate(ctx, chunkPrompt, chunk, opts)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			summaries[i] = Sanitize(out)
		}(i, chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return "", &ProviderError{Err: firstErr}
	}

	if len(summaries) == 1 {
		return summaries[0], nil
	}

	combined := strings.Join(summaries, "\n\n")
	return s.generate(ctx, provider, combinePrompt(languageName), combined, opts)
}

func (s *implSummarizer) generate(ctx context.Context, provider llm.Provider, prompt, content string, opts llm.Options) (string, error) {
	out, err := provider.Generate(ctx, prompt, content, opts)
	if err != nil {
		return "", &ProviderError{Err: err}
	}
	return out, nil
}

// languageDirective is prepended to every prompt so all calls in a
// request stay in the target language. The check is on the code: any
// value other than "en" gets the strong non-English directive.
func languageDirective(code, name string) string {
	if strings.ToLower(code) != "en" {
		return fmt.Sprintf(
			"CRITICAL: You must write the entire summary in %[1]s. "+
				"All content, including headings, sections, paragraphs, and any text, must be in %[1]s. "+
				"Do not use English or any other language. Only use %[1]s. "+
				"Do not include any thinking process, reasoning, or meta-commentary. "+
				"Only provide the final summary in %[1]s.\n\n",
			name,
		)
	}
	return "Do not include any thinking process, reasoning, or meta-commentary. " +
		"Only provide the final summary.\n\n"
}

func combinePrompt(languageName string) string {
	if strings.ToLower(languageName) != "english" {
		return fmt.Sprintf(
			"CRITICAL: You must write the entire combined summary in %[1]s. "+
				"All content, including headings, sections, paragraphs, and any text, must be in %[1]s. "+
				"Do not use English or any other language. Only use %[1]s.\n\n"+
				"The following are summaries of different parts of a text file. "+
				"Please combine them into a single coherent summary in %[1]s. "+
				"Do not include any thinking process, reasoning, or meta-commentary. "+
				"Only provide the final summary.\n\n"+
				"{content}",
			languageName,
		)
	}
	return "The following are summaries of different parts of a text file. " +
		"Please combine them into a single coherent summary. " +
		"Do not include any thinking process or reasoning - only the final summary.\n\n" +
		"{content}"
}
