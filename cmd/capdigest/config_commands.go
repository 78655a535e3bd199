package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-digest/internal/config"
	"github.com/nguyentantai21042004/caption-digest/internal/logger"
	"github.com/nguyentantai21042004/caption-digest/internal/prompts"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigSetCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			configPath, err := ctx.configPath()
			if err != nil {
				return err
			}
			templatesPath, err := cfg.TemplatesFile()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", configPath)
			fmt.Fprintf(out, "Templates file: %s\n", templatesPath)
			fmt.Fprintf(out, "Provider: %s\n", cfg.Provider)
			fmt.Fprintf(out, "Output format: %s\n", cfg.Output.Format)
			if cfg.Output.Dir != "" {
				fmt.Fprintf(out, "Output dir: %s\n", cfg.Output.Dir)
			}
			fmt.Fprintf(out, "Max text length: %d\n", cfg.Limits.MaxTextLength)
			fmt.Fprintf(out, "Chunk size: %d\n", cfg.Limits.ChunkSize)
			fmt.Fprintf(out, "Max concurrent: %d\n", cfg.Performance.MaxConcurrent)
			fmt.Fprintf(out, "Chunk workers: %d\n", cfg.Performance.ChunkWorkers)
			fmt.Fprintf(out, "Log level: %s\n", cfg.Logging.Level)
			if cfg.Watch.Dir != "" {
				fmt.Fprintf(out, "Watch dir: %s\n", cfg.Watch.Dir)
			}
			return nil
		},
	}
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config and template files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.configPath()
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", path)
				}
			}

			cfg := config.Default()
			if err := config.Save(cfg, path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration file initialized at: %s\n", path)

			templatesPath, err := cfg.TemplatesFile()
			if err != nil {
				return err
			}
			manager := prompts.New(templatesPath, logger.New("info"))
			if err := manager.InitDefaults(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Templates file initialized at: %s\n", templatesPath)
			fmt.Fprintln(out, "\nEdit them to configure your LLM provider, settings, and templates.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing config file")

	return cmd
}

func newConfigSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set key value",
		Short: "Write a single configuration value",
		Long: "Set updates one dot-separated key in the config file and\n" +
			"validates the result.",
		Example: "  capdigest config set provider openai\n" +
			"  capdigest config set providers.openai.api_key sk-...\n" +
			"  capdigest config set limits.chunk_size 20000",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.configPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault(path)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	}
}
