package cmd

import (
	"fmt"

	"github.com/kris-hansen/hwflow/utils/editor"
	"github.com/kris-hansen/hwflow/utils/fileutil"
	"github.com/kris-hansen/hwflow/utils/tui"
	"github.com/spf13/cobra"
)

var (
	editQuery  string
	editSteps  string
	editFile   string
	editOutput string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit steps in the terminal editor",
	Long: `Open steps in the interactive editor. Steps come from a query string as
printed by 'hwflow generate', the encoded value of its steps parameter, or a
JSON/YAML file. Malformed steps open an empty editor.

Keys: a add, e edit, d delete, c connect, s save, q quit.`,
	Example: `  hwflow edit --query 'steps=%5B%7B%22id%22...'
  hwflow edit --file steps.json -o edited.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := editorDocument(cmd)
		if err != nil {
			return err
		}

		if err := tui.Run(doc, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("editor failed: %w", err)
		}

		if editOutput != "" {
			out, err := formatSteps(doc.Steps(), formatForPath(editOutput))
			if err != nil {
				return err
			}
			return fileutil.WriteOutput(editOutput, out, cmd.OutOrStdout())
		}
		return nil
	},
}

// editorDocument hydrates the editor from whichever source flag was given
func editorDocument(cmd *cobra.Command) (*editor.Document, error) {
	switch {
	case editQuery != "":
		return editor.FromQuery(editQuery), nil
	case editSteps != "":
		return editor.FromParam(editSteps), nil
	case editFile != "":
		steps, err := readSteps(editFile, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return editor.FromSteps(steps), nil
	}
	return editor.New(), nil
}

func formatForPath(path string) string {
	if fileutil.IsYAML(path) {
		return formatYAML
	}
	return formatJSON
}

func init() {
	editCmd.Flags().StringVar(&editQuery, "query", "", "query string carrying a steps parameter")
	editCmd.Flags().StringVar(&editSteps, "steps", "", "encoded steps parameter value")
	editCmd.Flags().StringVar(&editFile, "file", "", "JSON or YAML steps file, or - for stdin")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "write the edited steps to a file")
	editCmd.MarkFlagsMutuallyExclusive("query", "steps", "file")
	rootCmd.AddCommand(editCmd)
}
