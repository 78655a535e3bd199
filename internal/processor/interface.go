package processor

import (
	"context"

	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
)

// Result records the outcome for one input file in a batch.
type Result struct {
	Input   string
	Output  string
	Skipped bool
	Err     error
}

// Processor runs summarization jobs over files and directories.
type Processor interface {
	// Process summarizes a single file and returns the artifact path.
	Process(ctx context.Context, req summarizer.Request) (string, error)
	// ProcessBatch expands inputs (files or directories), skips inputs
	// whose summary already exists unless force is set, and summarizes
	// the rest with bounded concurrency. The base request supplies the
	// per-run settings; paths are filled in per file.
	ProcessBatch(ctx context.Context, inputs []string, base summarizer.Request, force bool) ([]Result, error)
}
