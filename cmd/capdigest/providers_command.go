package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List available LLM providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.buildPipeline()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available providers:")
			for _, name := range p.registry.List() {
				marker := " "
				if name == p.cfg.Provider {
					marker = "*"
				}
				pc, configured := p.cfg.Providers[name]
				switch {
				case !configured:
					fmt.Fprintf(out, "%s %s (not configured)\n", marker, name)
				case pc.Model != "":
					fmt.Fprintf(out, "%s %s (model: %s)\n", marker, name, pc.Model)
				default:
					fmt.Fprintf(out, "%s %s\n", marker, name)
				}
			}
			fmt.Fprintln(out, "\n* = selected by config")
			return nil
		},
	}
}
