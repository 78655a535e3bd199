package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/caption-digest/internal/subtitle"
	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
	"github.com/nguyentantai21042004/caption-digest/pkg/fileutil"
)

// Process orchestrates summarization for a single input file.
func (p *implProcessor) Process(ctx context.Context, req summarizer.Request) (string, error) {
	start := time.Now()
	p.logger.Info(ctx, "Processing: %s", filepath.Base(req.InputPath))

	outputPath, err := p.summarizer.SummarizeFile(ctx, req)
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Summary saved to: %s (%s)", outputPath, time.Since(start).Round(time.Millisecond))
	return outputPath, nil
}

// ProcessBatch fans the expanded inputs out to the summarizer, at most
// max_concurrent files in flight. Expansion failures abort the batch;
// per-file failures are recorded and the batch keeps going.
func (p *implProcessor) ProcessBatch(ctx context.Context, inputs []string, base summarizer.Request, force bool) ([]Result, error) {
	files, err := p.expand(ctx, inputs, base.ForceText)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no text files found to process")
	}

	results := p.plan(ctx, files, &base, force)

	pending := 0
	for _, r := range results {
		if !r.Skipped {
			pending++
		}
	}
	if pending == 0 {
		p.logger.Info(ctx, "All %d file(s) already have summaries, use force to overwrite", len(results))
		return results, nil
	}

	sem := newSemaphore(p.maxConcurrent())
	var wg sync.WaitGroup

	started := 0
	for i := range results {
		if results[i].Skipped {
			continue
		}
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		if err := sem.acquire(ctx); err != nil {
			results[i].Err = err
			continue
		}

		started++
		p.logger.Info(ctx, "Processing [%d/%d]: %s", started, pending, filepath.Base(results[i].Input))

		wg.Add(1)
		go func(r *Result) {
			defer wg.Done()
			defer sem.release()

			req := base
			req.InputPath = r.Input
			req.OutputPath = r.Output

			out, err := p.summarizer.SummarizeFile(ctx, req)
			if err != nil {
				p.logger.Error(ctx, "Failed %s: %v", filepath.Base(r.Input), err)
				r.Err = err
				return
			}
			r.Output = out
			p.logger.Info(ctx, "Summary saved to: %s", out)
		}(&results[i])
	}
	wg.Wait()

	return results, nil
}

// expand turns files and directories into the concrete file list.
// Directory children are filtered by the supported extensions; explicit
// files with unknown extensions go through the binary sniff unless
// force-text is set.
func (p *implProcessor) expand(ctx context.Context, inputs []string, forceText bool) ([]string, error) {
	files, err := fileutil.Discover(inputs, subtitle.Extensions)
	if err != nil {
		return nil, err
	}

	var keep []string
	for _, f := range files {
		if forceText || hasKnownExtension(f) {
			keep = append(keep, f)
			continue
		}
		binary, err := fileutil.IsBinaryFile(f)
		if err != nil {
			return nil, err
		}
		if binary {
			p.logger.Warn(ctx, "Skipping binary file %s, use force-text to process anyway", f)
			continue
		}
		keep = append(keep, f)
	}
	return keep, nil
}

// plan resolves each file's expected output path and marks the ones to
// skip. An explicit output path names a per-file directory when it is a
// directory, the destination itself when exactly one input was found,
// and is otherwise ignored with a warning.
func (p *implProcessor) plan(ctx context.Context, files []string, base *summarizer.Request, force bool) []Result {
	outDir := p.cfg.Output.Dir
	outFile := ""
	if base.OutputPath != "" {
		if info, err := os.Stat(base.OutputPath); err == nil && info.IsDir() {
			outDir = base.OutputPath
		} else if len(files) == 1 {
			outFile = base.OutputPath
		} else {
			p.logger.Warn(ctx, "Output path %s is not a directory, using the default output location", base.OutputPath)
		}
	}
	base.OutputPath = ""

	ext := ".md"
	if base.Docx || p.cfg.Output.Format == "docx" {
		ext = ".docx"
	}

	results := make([]Result, len(files))
	for i, f := range files {
		out := outFile
		if out == "" {
			out = fileutil.OutputPath(f, outDir, ext)
		}
		results[i] = Result{Input: f, Output: out}
		if force {
			continue
		}
		if _, err := os.Stat(out); err == nil {
			p.logger.Info(ctx, "Skipping %s (output already exists: %s)", filepath.Base(f), out)
			results[i].Skipped = true
		}
	}
	return results
}

func (p *implProcessor) maxConcurrent() int {
	if n := p.cfg.Performance.MaxConcurrent; n > 0 {
		return n
	}
	return 2
}

func hasKnownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range subtitle.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
