package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-digest/internal/llm"
	"github.com/nguyentantai21042004/caption-digest/internal/processor"
	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag      string
		formatFlag      string
		templateFlag    string
		categoryFlag    string
		providerFlag    string
		languageFlag    string
		contextFlag     string
		fullContextFlag bool
		forceTextFlag   bool
		forceFlag       bool
		temperatureFlag float64
		maxTokensFlag   int
		timeoutFlag     time.Duration
		docxFlag        bool
		renameFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "summarize [files|dirs]...",
		Short: "Summarize subtitle and text files",
		Long: "Summarize parses the given subtitle or text files, runs them\n" +
			"through the configured LLM provider, and writes one summary per\n" +
			"input. Directories are expanded to their supported files\n" +
			"(.srt, .vtt, .ass, .ssa, .txt); inputs whose summary already\n" +
			"exists are skipped unless --force is set.",
		Example: "  capdigest summarize lecture.srt\n" +
			"  capdigest summarize episode.srt --format short\n" +
			"  capdigest summarize meeting.txt -l vi -c \"Weekly sales sync\"\n" +
			"  capdigest summarize ./captions/ -o ./summaries/",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.buildPipeline()
			if err != nil {
				return err
			}

			extraContext, err := readContextInput(contextFlag)
			if err != nil {
				return err
			}
			templateRef := composeTemplateRef(templateFlag, categoryFlag, formatFlag)

			providerName, _, err := p.cfg.ActiveProvider(providerFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Using provider: %s\n", providerName)
			fmt.Fprintf(out, "Using templates from: %s\n", p.templates.Path())
			fmt.Fprintf(out, "Using template: %s\n", displayTemplateRef(templateRef))
			fmt.Fprintln(out)

			base := summarizer.Request{
				OutputPath:   outputFlag,
				Template:     templateRef,
				Provider:     providerFlag,
				Language:     languageFlag,
				ExtraContext: extraContext,
				FullContext:  fullContextFlag,
				ForceText:    forceTextFlag,
				Docx:         docxFlag,
				Options: llm.Options{
					Temperature: temperatureFlag,
					MaxTokens:   maxTokensFlag,
					Timeout:     timeoutFlag,
				},
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results, err := p.processor.ProcessBatch(runCtx, args, base, forceFlag)
			if err != nil {
				return err
			}

			var processed []processor.Result
			var skipped, failed int
			for _, r := range results {
				switch {
				case r.Skipped:
					skipped++
				case r.Err != nil:
					failed++
				default:
					processed = append(processed, r)
				}
			}

			if len(results) == 1 && results[0].Err != nil {
				return results[0].Err
			}

			if len(processed) > 0 {
				fmt.Fprintf(out, "\nSuccessfully processed %d file(s):\n", len(processed))
				for _, r := range processed {
					fmt.Fprintf(out, "  - %s\n", r.Output)
				}
			}
			if skipped > 0 {
				fmt.Fprintf(out, "\nSkipped %d file(s) (use --force to overwrite)\n", skipped)
			}

			if renameFlag {
				for _, r := range processed {
					withSummary := ""
					if strings.EqualFold(filepath.Ext(r.Output), ".md") {
						withSummary = r.Output
					}
					if err := renameOne(cmd, p, r.Input, withSummary, providerFlag, forceTextFlag); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Rename suggestions for %s: %v\n", filepath.Base(r.Input), err)
					}
				}
			}

			if len(processed) == 0 && failed > 0 {
				return fmt.Errorf("no files were successfully processed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (single input) or directory (batch)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Summary format: short, long or blog")
	cmd.Flags().StringVarP(&templateFlag, "template", "t", "", "Prompt template name, optionally category:name (overrides --format)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Template category combined with --template")
	cmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider to use (overrides config)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Summary language code (default en)")
	cmd.Flags().StringVarP(&contextFlag, "context", "c", "", "Additional context: literal text or a file path")
	cmd.Flags().BoolVar(&fullContextFlag, "full-context", false, "Keep timestamps and speakers in the extracted text")
	cmd.Flags().BoolVar(&forceTextFlag, "force-text", false, "Treat unknown file types as plain text")
	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing summaries")
	cmd.Flags().Float64Var(&temperatureFlag, "temperature", 0, "Sampling temperature (default 0.7)")
	cmd.Flags().IntVar(&maxTokensFlag, "max-tokens", 0, "Response token limit (default 2000)")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (default 2m)")
	cmd.Flags().BoolVar(&docxFlag, "docx", false, "Write Word documents instead of markdown")
	cmd.Flags().BoolVar(&renameFlag, "rename", false, "Suggest better filenames after summarizing")

	return cmd
}

// composeTemplateRef merges --template, --category and --format into one
// template reference. An explicit template wins over --format; a bare
// template name combines with --category.
func composeTemplateRef(template, category, format string) string {
	switch {
	case strings.Contains(template, ":"):
		return template
	case template != "" && category != "":
		return category + ":" + template
	case template != "":
		return template
	case format != "":
		return format + ":default"
	}
	return ""
}

func displayTemplateRef(ref string) string {
	if ref == "" {
		return "default"
	}
	return ref
}

// readContextInput accepts -c values as either literal text or the path
// of a file holding the context.
func readContextInput(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if info, err := os.Stat(value); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("read context file %s: %w", value, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(value), nil
}
