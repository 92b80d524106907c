package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// credentialNames are the variables that may be stored in the keyring
var credentialNames = []string{config.GeminiAPIKeyVar, config.OpenAIAPIKeyVar}

// readSecret reads a secret without echo from a terminal, or a line otherwise
var readSecret = func(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage API keys stored in the system keyring",
	Long: `Store or remove provider API keys in the system keyring. A key in the
environment always takes precedence over the keyring.`,
}

var credentialSetCmd = &cobra.Command{
	Use:   "set [NAME]",
	Short: "Store an API key (default GEMINI_API_KEY)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := credentialName(args)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Enter %s: ", name)
		secret, err := readSecret(cmd.InOrStdin())
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		secret = strings.TrimSpace(secret)
		if secret == "" {
			return fmt.Errorf("%s must not be empty", name)
		}

		if err := config.Credentials.Set(name, secret); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s stored in the system keyring\n", name)
		return nil
	},
}

var credentialDeleteCmd = &cobra.Command{
	Use:   "delete [NAME]",
	Short: "Remove an API key (default GEMINI_API_KEY)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := credentialName(args)
		if err != nil {
			return err
		}
		if err := config.Credentials.Delete(name); err != nil {
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s removed from the system keyring\n", name)
		return nil
	},
}

func credentialName(args []string) (string, error) {
	if len(args) == 0 {
		return config.GeminiAPIKeyVar, nil
	}
	name := strings.ToUpper(args[0])
	for _, known := range credentialNames {
		if name == known {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown credential %s (use %s)", args[0], strings.Join(credentialNames, " or "))
}

func init() {
	credentialCmd.AddCommand(credentialSetCmd)
	credentialCmd.AddCommand(credentialDeleteCmd)
	rootCmd.AddCommand(credentialCmd)
}
