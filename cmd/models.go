package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kris-hansen/hwflow/utils/models"
	"github.com/spf13/cobra"
)

var (
	modelsJSON  bool
	modelsKnown bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Find a model that answers",
	Long: `Send a trivial prompt to each model in models.probe, in order, and report
the first one that answers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelsKnown {
			return printKnownModels(cmd.OutOrStdout())
		}
		if err := models.CheckCredentials(envConfig, envConfig.Models.Probe); err != nil {
			return err
		}

		result := models.Probe(cmd.Context(), envConfig.Models.Probe, models.NewResolver(envConfig))

		out := cmd.OutOrStdout()
		if modelsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprintf(out, "Probed: %s\n", strings.Join(envConfig.Models.Probe, ", "))
		if len(result.AvailableModels) == 0 {
			fmt.Fprintln(out, "Available: none")
		} else {
			fmt.Fprintf(out, "Available: %s\n", strings.Join(result.AvailableModels, ", "))
		}
		fmt.Fprintf(out, "Recommended: %s\n", result.Recommended)
		return nil
	},
}

// printKnownModels lists the registry without contacting any provider
func printKnownModels(out io.Writer) error {
	registry := models.GetRegistry()
	for _, provider := range registry.Providers() {
		fmt.Fprintf(out, "%s\n", provider)
		if known := registry.GetModels(provider); len(known) > 0 {
			fmt.Fprintf(out, "  models:   %s\n", strings.Join(known, ", "))
		}
		if families := registry.GetFamilies(provider); len(families) > 0 {
			fmt.Fprintf(out, "  prefixes: %s\n", strings.Join(families, ", "))
		}
	}
	return nil
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "print the result as JSON")
	modelsCmd.Flags().BoolVar(&modelsKnown, "known", false, "list the model names and prefixes hwflow recognises, without probing")
	rootCmd.AddCommand(modelsCmd)
}
