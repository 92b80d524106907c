package cmd

import (
	"fmt"

	"github.com/kris-hansen/hwflow/utils/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var servePort int

var serverCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Run the workflow generation HTTP API",
	Long: `Start the HTTP server on the configured port (default: 8080).

Endpoints:
  GET  /api/generate-workflow   Status and credential check
  POST /api/generate-workflow   Generate steps (multipart: chatText, optional document)
  GET  /api/list-models         Find the first model that answers
  GET  /health                  Health check`,
	Example: `  # Start the server
  hwflow serve

  # Start on another port with verbose logging
  hwflow serve --port 9090 --verbose

  # View current configuration
  hwflow serve show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			envConfig.Server.Port = servePort
		}
		return server.Run(envConfig)
	},
}

// serverSettings is the part of the configuration shown by "serve show"
type serverSettings struct {
	Environment  string      `yaml:"environment"`
	ConfigFile   string      `yaml:"configFile"`
	GeminiAPIKey string      `yaml:"geminiApiKey"`
	OpenAIAPIKey string      `yaml:"openaiApiKey"`
	AWSRegion    string      `yaml:"awsRegion,omitempty"`
	Models       interface{} `yaml:"models"`
	Document     interface{} `yaml:"document"`
	Server       interface{} `yaml:"server"`
}

var showServerCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective server configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := serverSettings{
			Environment:  envConfig.Environment,
			ConfigFile:   envConfig.ConfigFile,
			GeminiAPIKey: configuredLabel(envConfig.GeminiAPIKey),
			OpenAIAPIKey: configuredLabel(envConfig.OpenAIAPIKey),
			AWSRegion:    envConfig.AWSRegion,
			Models:       envConfig.Models,
			Document:     envConfig.Document,
			Server:       envConfig.Server,
		}
		if settings.ConfigFile == "" {
			settings.ConfigFile = "(defaults and environment only)"
		}

		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func configuredLabel(value string) string {
	if value == "" {
		return "not configured"
	}
	return "configured"
}

func init() {
	serverCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
	serverCmd.AddCommand(showServerCmd)
	rootCmd.AddCommand(serverCmd)
}
