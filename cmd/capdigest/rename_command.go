package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-digest/internal/subtitle"
	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
)

// renameExcerptLen caps how much raw content is sent when no summary is
// available to base suggestions on.
const renameExcerptLen = 2000

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		withSummaryFlag string
		providerFlag    string
		forceTextFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "rename files...",
		Short: "Suggest better filenames based on content",
		Long: "Rename asks the LLM for descriptive filenames, based on an\n" +
			"existing summary when one is found (a sibling .md file or\n" +
			"--with-summary) and on the raw content otherwise, then lets you\n" +
			"pick interactively which to apply.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.buildPipeline()
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := renameOne(cmd, p, path, withSummaryFlag, providerFlag, forceTextFlag); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&withSummaryFlag, "with-summary", "", "Existing summary file to base suggestions on")
	cmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider to use (overrides config)")
	cmd.Flags().BoolVar(&forceTextFlag, "force-text", false, "Treat unknown file types as plain text")

	return cmd
}

// renameOne runs the suggest-select-apply flow for a single input file.
func renameOne(cmd *cobra.Command, p *pipeline, inputPath, withSummary, providerName string, forceText bool) error {
	out := cmd.OutOrStdout()

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", inputPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, pass files", inputPath)
	}

	fmt.Fprintf(out, "\nProcessing: %s\n", filepath.Base(inputPath))

	provider, err := p.provider(providerName)
	if err != nil {
		return err
	}

	// Prefer an existing summary for suggestions; fall back to the raw
	// content when none is found or it yields nothing.
	summaryPath := withSummary
	if summaryPath == "" {
		candidate := replaceExt(inputPath, ".md")
		if _, err := os.Stat(candidate); err == nil {
			summaryPath = candidate
		}
	}

	var suggestions summarizer.Suggestions
	if summaryPath != "" {
		data, err := os.ReadFile(summaryPath)
		if err != nil {
			return fmt.Errorf("read summary file: %w", err)
		}
		if summary := summarizer.ExtractSummary(string(data)); summary != "" {
			suggestions, err = summarizer.SuggestFilenames(cmd.Context(), provider, inputPath, summaryPath, summary)
			if err != nil {
				return err
			}
		}
	}
	if len(suggestions.Original) == 0 || len(suggestions.Output) == 0 {
		doc, err := subtitle.ParseFile(inputPath, subtitle.Options{ForceText: forceText})
		if err != nil {
			return err
		}
		excerpt := subtitle.Extract(doc, false)
		if len(excerpt) > renameExcerptLen {
			excerpt = excerpt[:renameExcerptLen] + "..."
		}
		suggestions, err = summarizer.SuggestFilenamesFromContent(cmd.Context(), provider, inputPath, excerpt)
		if err != nil {
			return err
		}
	}
	if len(suggestions.Original) == 0 || len(suggestions.Output) == 0 {
		return fmt.Errorf("no usable suggestions for %s", filepath.Base(inputPath))
	}

	if summaryPath == "" {
		summaryPath = replaceExt(inputPath, ".md")
	}

	selOriginal, selOutput, ok := selectFilenames(cmd, inputPath, summaryPath, suggestions)
	if !ok {
		fmt.Fprintln(out, "Skipped.")
		return nil
	}

	applyRename(cmd, inputPath, selOriginal)
	if _, err := os.Stat(summaryPath); err == nil {
		applyRename(cmd, summaryPath, selOutput)
	}
	return nil
}

// selectFilenames walks the user through choosing replacement names.
// ok is false when the user backs out.
func selectFilenames(cmd *cobra.Command, inputPath, outputPath string, s summarizer.Suggestions) (original, output string, ok bool) {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n%s\nFilename Suggestions\n%s\n", rule, rule)

	original = chooseName(out, in, "Original file", filepath.Base(inputPath), s.Original)
	output = chooseName(out, in, "Output file", filepath.Base(outputPath), s.Output)

	fmt.Fprintln(out, "\nSelected filenames:")
	fmt.Fprintf(out, "  Original: %s\n", original)
	fmt.Fprintf(out, "  Output: %s\n", output)

	if !confirm(out, in, "Proceed with renaming?") {
		return "", "", false
	}
	return original, output, true
}

func chooseName(out io.Writer, in *bufio.Reader, label, current string, options []string) string {
	fmt.Fprintf(out, "\n%s: %s\n", label, current)
	fmt.Fprintln(out, "Suggested filenames:")
	fmt.Fprintln(out, "  0. Keep current filename")
	for i, name := range options {
		fmt.Fprintf(out, "  %d. %s\n", i+1, name)
	}

	for {
		fmt.Fprintf(out, "\nSelect filename (0-%d) [0]: ", len(options))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return current
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return current
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > len(options) {
			fmt.Fprintf(out, "Enter a number between 0 and %d.\n", len(options))
			continue
		}
		if n == 0 {
			return current
		}
		return options[n-1]
	}
}

func confirm(out io.Writer, in *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "\n%s [Y/n]: ", question)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "" || line == "y" || line == "yes"
}

// applyRename renames path to newName inside the same directory,
// refusing to clobber an existing file.
func applyRename(cmd *cobra.Command, path, newName string) {
	if newName == filepath.Base(path) {
		return
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Stat(target); err == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s already exists, keeping %s\n", target, filepath.Base(path))
		return
	}
	if err := os.Rename(path, target); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error renaming %s: %v\n", filepath.Base(path), err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to: %s\n", filepath.Base(path), newName)
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
