package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-digest/internal/summarizer"
	"github.com/nguyentantai21042004/caption-digest/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var (
		providerFlag string
		templateFlag string
		languageFlag string
		docxFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory and summarize files as they appear",
		Long: "Watch monitors a directory and summarizes every supported file\n" +
			"dropped into it. The directory comes from the argument or from\n" +
			"watch.dir in the config, and is created when missing.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.buildPipeline()
			if err != nil {
				return err
			}

			dir := p.cfg.Watch.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no watch directory: pass one as an argument or set watch.dir in the config")
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create watch directory: %w", err)
			}

			base := summarizer.Request{
				Template: templateFlag,
				Provider: providerFlag,
				Language: languageFlag,
				Docx:     docxFlag,
			}
			handler := func(ctx context.Context, filePath string) error {
				req := base
				req.InputPath = filePath
				_, err := p.processor.Process(ctx, req)
				return err
			}

			w, err := watcher.New(dir, handler, p.log, p.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (press Ctrl+C to stop)\n", dir)

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			p.log.Info(cmd.Context(), "Watcher stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider to use (overrides config)")
	cmd.Flags().StringVarP(&templateFlag, "template", "t", "", "Prompt template for watched files")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Summary language code (default en)")
	cmd.Flags().BoolVar(&docxFlag, "docx", false, "Write Word documents instead of markdown")

	return cmd
}
