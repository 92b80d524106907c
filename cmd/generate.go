package cmd

import (
	"fmt"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/document"
	"github.com/kris-hansen/hwflow/utils/editor"
	"github.com/kris-hansen/hwflow/utils/fileutil"
	"github.com/kris-hansen/hwflow/utils/models"
	"github.com/kris-hansen/hwflow/utils/tui"
	"github.com/kris-hansen/hwflow/utils/workflow"
	"github.com/spf13/cobra"
)

var (
	generateDocument string
	generateFormat   string
	generateOutput   string
	generateEdit     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate \"<description>\"",
	Short: "Generate test steps from a description",
	Long: `Generate a list of hardware test steps from a natural language description,
optionally using a specification sheet as context.

Models are tried in the order configured under models.fallback. A model that
does not exist for your account is skipped; any other failure stops generation.`,
	Example: `  # Generate steps and print them as JSON
  hwflow generate "Burn-in test for a 12V power supply"

  # Use a datasheet and show the result as a table
  hwflow generate "Qualify this DC-DC converter" --document datasheet.txt --format table

  # Save as YAML and open the editor
  hwflow generate "Thermal cycling for the sensor board" -o steps.yaml --format yaml --edit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := args[0]
		if description == "" {
			return fmt.Errorf("description is required")
		}

		if err := validateFormat(generateFormat); err != nil {
			return err
		}
		if err := models.CheckCredentials(envConfig, envConfig.Models.Fallback); err != nil {
			return err
		}

		var documentText *string
		if generateDocument != "" {
			doc, err := document.FromPath(generateDocument)
			if err != nil {
				return err
			}
			config.VerboseLog("Using document %s (%d bytes, hash %s)", doc.Name, doc.Size, doc.Hash)
			documentText = &doc.Text
		}

		builder := workflow.PromptBuilder{MaxDocumentChars: envConfig.Document.MaxPromptChars}
		prompt := builder.Build(description, documentText)

		invoker := models.NewFallbackInvoker(envConfig.Models.Fallback, models.NewResolver(envConfig))
		generation, err := invoker.Invoke(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("failed to generate workflow: %w", err)
		}
		config.VerboseLog("Generated with %s", generation.Model)

		steps, err := workflow.Normalize(generation.Text)
		if err != nil {
			return fmt.Errorf("failed to generate workflow: %w", err)
		}
		issues, err := workflow.Lint(steps)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
		}

		if generateEdit {
			doc := editor.FromSteps(steps)
			if err := tui.Run(doc, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			steps = doc.Steps()
		}

		out, err := formatSteps(steps, generateFormat)
		if err != nil {
			return err
		}
		if err := fileutil.WriteOutput(generateOutput, out, cmd.OutOrStdout()); err != nil {
			return err
		}

		query, err := workflow.EditQuery(steps)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d steps with %s. Open them in the editor with:\n  hwflow edit --query '%s'\n", len(steps), generation.Model, query)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateDocument, "document", "d", "", "specification sheet to include in the prompt")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", formatJSON, "output format: json, yaml or table")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write steps to a file instead of stdout")
	generateCmd.Flags().BoolVar(&generateEdit, "edit", false, "open the generated steps in the terminal editor")
	rootCmd.AddCommand(generateCmd)
}
