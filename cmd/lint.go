package cmd

import (
	"fmt"

	"github.com/kris-hansen/hwflow/utils/workflow"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <steps.json|steps.yaml|->",
	Short: "Check steps against the step conventions",
	Long: `Report steps that do not follow the conventions generation asks for:
an id and label on every step, flat string or number parameters, numeric
positions and unique ids. Accepts a bare array or a {"steps": [...]} response.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readStepsJSON(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		issues, err := workflow.LintJSON(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintln(out, "No issues found")
			return nil
		}
		for _, issue := range issues {
			fmt.Fprintf(out, "  %s\n", issue)
		}
		return fmt.Errorf("%d lint issue(s) in %s", len(issues), args[0])
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
