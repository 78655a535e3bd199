package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/caption-digest/internal/config"
	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/internal/logger"
	"github.com/nguyentantai21042004/caption-digest/internal/prompts"
)

// stubProvider records every Generate call. When fn is set it decides the
// response per call; otherwise response/err are returned as-is.
type stubProvider struct {
	mu       sync.Mutex
	fn       func(ctx context.Context, prompt, content string) (string, error)
	response string
	err      error
	calls    int
	prompts  []string
	contents []string
	opts     []llm.Options
}

func (s *stubProvider) Generate(ctx context.Context, prompt, content string, opts llm.Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.contents = append(s.contents, content)
	s.opts = append(s.opts, opts)
	if s.fn != nil {
		return s.fn(ctx, prompt, content)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func stubFactory(p llm.Provider) llm.Factory {
	return func(llm.Settings, logger.Logger) (llm.Provider, error) {
		return p, nil
	}
}

func testConfig(chunkSize int, outputDir string) *config.Config {
	cfg := config.Default()
	cfg.Provider = "stub"
	cfg.Providers["stub"] = config.ProviderConfig{}
	cfg.Limits.ChunkSize = chunkSize
	cfg.Performance.ChunkWorkers = 2
	cfg.Output.Dir = outputDir
	return cfg
}

func testSummarizer(t *testing.T, p llm.Provider, chunkSize int, outputDir string) Summarizer {
	t.Helper()
	log := logger.New("error")
	reg := llm.NewRegistry(log)
	reg.Register("stub", stubFactory(p))
	tm := prompts.New(filepath.Join(t.TempDir(), "prompts.yaml"), log)
	return New(testConfig(chunkSize, outputDir), reg, tm, log)
}

const srtFixture = `1
00:00:01,000 --> 00:00:03,000
Hello there.

2
00:00:04,000 --> 00:00:06,000
Welcome to the talk.
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestSummarizeSingleShot(t *testing.T) {
	p := &stubProvider{response: "<think>hm</think>  A tidy summary.  "}
	s := testSummarizer(t, p, 1000, "")

	got, err := s.Summarize(context.Background(), "Some short content.", "Summarize this: {content}", Request{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "A tidy summary." {
		t.Errorf("Summarize() = %q, want %q", got, "A tidy summary.")
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls)
	}
	if !strings.HasPrefix(p.prompts[0], "Do not include any thinking process") {
		t.Errorf("prompt missing the default directive: %q", p.prompts[0])
	}
	if !strings.Contains(p.prompts[0], "Summarize this: {content}") {
		t.Errorf("prompt missing the template body: %q", p.prompts[0])
	}
	if p.contents[0] != "Some short content." {
		t.Errorf("content = %q, want the input untouched", p.contents[0])
	}
}

func TestSummarizeLanguageDirective(t *testing.T) {
	tests := []struct {
		name       string
		language   string
		wantPrefix string
	}{
		{"default english", "", "Do not include any thinking process"},
		{"explicit en", "en", "Do not include any thinking process"},
		{"code resolves to name", "vi", "CRITICAL: You must write the entire summary in vietnamese."},
		{"full name passes through", "Spanish", "CRITICAL: You must write the entire summary in spanish."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{response: "ok"}
			s := testSummarizer(t, p, 1000, "")

			_, err := s.Summarize(context.Background(), "content", "Prompt.", Request{Language: tt.language})
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if !strings.HasPrefix(p.prompts[0], tt.wantPrefix) {
				t.Errorf("prompt = %q, want prefix %q", p.prompts[0], tt.wantPrefix)
			}
		})
	}
}

func TestSummarizeExtraContext(t *testing.T) {
	p := &stubProvider{response: "ok"}
	s := testSummarizer(t, p, 1000, "")

	_, err := s.Summarize(context.Background(), "content", "Prompt.", Request{ExtraContext: "Focus on Go."})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got := strings.Count(p.prompts[0], "Additional Context:\nFocus on Go."); got != 1 {
		t.Errorf("extra context appears %d times, want 1: %q", got, p.prompts[0])
	}
}

func TestSummarizeProviderSelection(t *testing.T) {
	def := &stubProvider{response: "from default"}
	alt := &stubProvider{response: "from alt"}

	log := logger.New("error")
	reg := llm.NewRegistry(log)
	reg.Register("stub", stubFactory(def))
	reg.Register("alt", stubFactory(alt))

	cfg := testConfig(1000, "")
	cfg.Providers["alt"] = config.ProviderConfig{}
	tm := prompts.New(filepath.Join(t.TempDir(), "prompts.yaml"), log)
	s := New(cfg, reg, tm, log)

	got, err := s.Summarize(context.Background(), "content", "Prompt.", Request{Provider: "alt"})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "from alt" {
		t.Errorf("Summarize() = %q, want the override provider's answer", got)
	}
	if def.calls != 0 || alt.calls != 1 {
		t.Errorf("calls = default %d / alt %d, want 0 / 1", def.calls, alt.calls)
	}

	if _, err := s.Summarize(context.Background(), "content", "Prompt.", Request{Provider: "ghost"}); err == nil {
		t.Error("Summarize() with unknown provider: error = nil, want failure")
	}
}

func TestSummarizeChunked(t *testing.T) {
	p := &stubProvider{
		fn: func(_ context.Context, prompt, content string) (string, error) {
			if strings.Contains(prompt, "combine them into a single coherent summary") {
				return "Combined overview.", nil
			}
			return "S:" + content, nil
		},
	}
	s := testSummarizer(t, p, 8, "")

	got, err := s.Summarize(context.Background(), "line a\nline b\nline c", "Prompt.", Request{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "Combined overview." {
		t.Errorf("Summarize() = %q, want %q", got, "Combined overview.")
	}
	if p.calls != 4 {
		t.Fatalf("provider calls = %d, want 3 chunk calls plus a combine call", p.calls)
	}

	seen := map[string]bool{}
	for _, prompt := range p.prompts[:3] {
		for _, marker := range []string{"This is chunk 1 of 3", "This is chunk 2 of 3", "This is chunk 3 of 3"} {
			if strings.Contains(prompt, marker) {
				seen[marker] = true
			}
		}
	}
	if len(seen) != 3 {
		t.Errorf("chunk prompts missing markers, saw %v", seen)
	}

	// Combine input preserves source order no matter which chunk finished first.
	if want := "S:line a\n\nS:line b\n\nS:line c"; p.contents[3] != want {
		t.Errorf("combine content = %q, want %q", p.contents[3], want)
	}
}

func TestSummarizeChunkedSingleChunk(t *testing.T) {
	p := &stubProvider{response: "Solo summary."}
	s := testSummarizer(t, p, 10, "")

	got, err := s.Summarize(context.Background(), strings.Repeat("x", 30), "Prompt.", Request{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "Solo summary." {
		t.Errorf("Summarize() = %q, want %q", got, "Solo summary.")
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1 with no combine step", p.calls)
	}
	if !strings.Contains(p.prompts[0], "This is chunk 1 of 1") {
		t.Errorf("prompt = %q, want chunk framing", p.prompts[0])
	}
}

func TestSummarizeChunkedError(t *testing.T) {
	p := &stubProvider{
		fn: func(_ context.Context, prompt, _ string) (string, error) {
			if strings.Contains(prompt, "This is chunk 2 of 3") {
				return "", errors.New("boom")
			}
			return "fine", nil
		},
	}
	s := testSummarizer(t, p, 8, "")

	_, err := s.Summarize(context.Background(), "line a\nline b\nline c", "Prompt.", Request{})
	if err == nil {
		t.Fatal("Summarize() error = nil, want chunk failure")
	}
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Summarize() error = %T, want *ProviderError", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %q, want the provider failure inside", err)
	}
}

func TestSummarizeFile(t *testing.T) {
	in := writeFixture(t, "talk.srt", srtFixture)
	outDir := t.TempDir()
	p := &stubProvider{response: "A summary of the talk."}
	s := testSummarizer(t, p, 1000, outDir)

	got, err := s.SummarizeFile(context.Background(), Request{InputPath: in})
	if err != nil {
		t.Fatalf("SummarizeFile() error = %v", err)
	}
	if want := filepath.Join(outDir, "talk.md"); got != want {
		t.Errorf("SummarizeFile() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := FormatMarkdown(in, "A summary of the talk."); string(data) != want {
		t.Errorf("written summary = %q, want %q", data, want)
	}
	if want := "Hello there.\nWelcome to the talk."; p.contents[0] != want {
		t.Errorf("extracted content = %q, want %q", p.contents[0], want)
	}
}

func TestSummarizeFileExplicitOutput(t *testing.T) {
	in := writeFixture(t, "talk.srt", srtFixture)
	out := filepath.Join(t.TempDir(), "custom", "digest.md")
	p := &stubProvider{response: "Summary."}
	s := testSummarizer(t, p, 1000, "")

	got, err := s.SummarizeFile(context.Background(), Request{InputPath: in, OutputPath: out})
	if err != nil {
		t.Fatalf("SummarizeFile() error = %v", err)
	}
	if got != out {
		t.Errorf("SummarizeFile() = %q, want %q", got, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Stat() error = %v, want the file written", err)
	}
}

func TestSummarizeFileDocx(t *testing.T) {
	in := writeFixture(t, "talk.srt", srtFixture)
	outDir := t.TempDir()
	p := &stubProvider{response: "# Heading\n\nSummary body."}
	s := testSummarizer(t, p, 1000, outDir)

	got, err := s.SummarizeFile(context.Background(), Request{InputPath: in, Docx: true})
	if err != nil {
		t.Fatalf("SummarizeFile() error = %v", err)
	}
	if want := filepath.Join(outDir, "talk.docx"); got != want {
		t.Errorf("SummarizeFile() = %q, want %q", got, want)
	}
	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Error("SummarizeFile() wrote an empty document")
	}
}

func TestSummarizeFileContentTooLong(t *testing.T) {
	in := writeFixture(t, "talk.srt", srtFixture)
	p := &stubProvider{response: "Summary."}

	log := logger.New("error")
	reg := llm.NewRegistry(log)
	reg.Register("stub", stubFactory(p))
	cfg := testConfig(10000, "")
	cfg.Limits.MaxTextLength = 10
	tm := prompts.New(filepath.Join(t.TempDir(), "prompts.yaml"), log)
	s := New(cfg, reg, tm, log)

	_, err := s.SummarizeFile(context.Background(), Request{InputPath: in})
	var tooLong *ContentTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("SummarizeFile() error = %v, want *ContentTooLongError", err)
	}
	if want := len("Hello there.\nWelcome to the talk."); tooLong.Length != want {
		t.Errorf("Length = %d, want %d", tooLong.Length, want)
	}
	if tooLong.Limit != 10 {
		t.Errorf("Limit = %d, want 10", tooLong.Limit)
	}
	if tooLong.File != "talk.srt" {
		t.Errorf("File = %q, want %q", tooLong.File, "talk.srt")
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0 when the input is rejected", p.calls)
	}
}

func TestSummarizeFileUnknownTemplate(t *testing.T) {
	in := writeFixture(t, "talk.srt", srtFixture)
	p := &stubProvider{response: "Summary."}
	s := testSummarizer(t, p, 1000, "")

	_, err := s.SummarizeFile(context.Background(), Request{InputPath: in, Template: "nope"})
	if err == nil {
		t.Fatal("SummarizeFile() error = nil, want unknown template failure")
	}
	if !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("error = %q, want it to name the template", err)
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0", p.calls)
	}
}

func TestSummarizeProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	s := testSummarizer(t, p, 1000, "")

	_, err := s.Summarize(context.Background(), "content", "Prompt.", Request{})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Summarize() error = %T, want *ProviderError", err)
	}
	if !strings.Contains(err.Error(), "generate summary") {
		t.Errorf("error = %q, want the generate prefix", err)
	}
}
