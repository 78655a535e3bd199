package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newTemplatesCommand(ctx *commandContext) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage prompt templates",
		Long: "Templates control how files are summarized. Built-in categories\n" +
			"(short, long, blog) ship with the binary; saved templates live in\n" +
			"the templates file and shadow built-ins of the same name.",
	}

	templatesCmd.AddCommand(newTemplatesListCommand(ctx))
	templatesCmd.AddCommand(newTemplatesShowCommand(ctx))
	templatesCmd.AddCommand(newTemplatesSaveCommand(ctx))
	templatesCmd.AddCommand(newTemplatesDeleteCommand(ctx))

	return templatesCmd
}

func newTemplatesListCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List template categories and custom templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.templateManager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if categoryFlag != "" {
				names := manager.TemplatesIn(categoryFlag)
				if len(names) == 0 {
					return fmt.Errorf("no templates found in category %q", categoryFlag)
				}
				fmt.Fprintf(out, "Templates in category %q:\n", categoryFlag)
				for _, name := range names {
					fmt.Fprintf(out, "  - %s\n", name)
				}
				return nil
			}

			fmt.Fprintln(out, "Template categories:")
			for _, category := range manager.Categories() {
				fmt.Fprintf(out, "  %s:\n", category)
				for _, name := range manager.TemplatesIn(category) {
					fmt.Fprintf(out, "    - %s\n", name)
				}
			}
			if names := manager.Names(); len(names) > 0 {
				fmt.Fprintln(out, "\nCustom templates:")
				for _, name := range names {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "List templates in one category only")

	return cmd
}

func newTemplatesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show name",
		Short: "Print a template's text",
		Long: "Show prints the full template body, including the {content}\n" +
			"placeholder. Category templates are addressed as category:name.",
		Example: "  capdigest templates show default\n" +
			"  capdigest templates show short:concise",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.templateManager()
			if err != nil {
				return err
			}
			prompt, err := manager.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Template: %s\n", args[0])
			fmt.Fprintln(out, strings.Repeat("=", 60))
			fmt.Fprintln(out, prompt)
			return nil
		},
	}
}

func newTemplatesSaveCommand(ctx *commandContext) *cobra.Command {
	var fileFlag string
	var textFlag string

	cmd := &cobra.Command{
		Use:   "save name",
		Short: "Save a template to the templates file",
		Long: "Save writes a template under the given name, or category:name to\n" +
			"place it inside a category. The body comes from --file or --text\n" +
			"and should contain a {content} placeholder for the input text.",
		Example: "  capdigest templates save meeting --file meeting-prompt.txt\n" +
			"  capdigest templates save short:tweet --text 'One tweet:\\n\\n{content}'",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fileFlag == "") == (textFlag == "") {
				return fmt.Errorf("provide the template body with exactly one of --file or --text")
			}

			body := textFlag
			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("read template file: %w", err)
				}
				body = string(data)
			}
			if !strings.Contains(body, "{content}") {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: template has no {content} placeholder, the input text will be appended")
			}

			manager, err := ctx.templateManager()
			if err != nil {
				return err
			}
			if err := manager.Save(args[0], body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q to %s\n", args[0], manager.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&fileFlag, "file", "", "File holding the template body")
	cmd.Flags().StringVar(&textFlag, "text", "", "Template body as a literal string")

	return cmd
}

func newTemplatesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete name",
		Short: "Delete a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.templateManager()
			if err != nil {
				return err
			}
			if err := manager.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %q\n", args[0])
			return nil
		},
	}
}
