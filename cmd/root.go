package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
	"github.com/spf13/cobra"
)

// version is set at build time
var version string

var verbose bool
var debug bool
var configPath string

// envConfig holds the loaded configuration, available to all commands
var envConfig *config.EnvConfig

var rootCmd = &cobra.Command{
	Use:   "hwflow",
	Short: "Generate hardware test workflows from natural language",
	Long: `hwflow turns a description of a hardware test, optionally backed by a
specification sheet, into a list of structured test steps using an LLM.

Getting Started:
  1. hwflow credential set      Store your GEMINI_API_KEY in the system keyring
  2. hwflow generate "..."      Generate steps from a description
  3. hwflow edit --file f.json  Refine the steps in the terminal editor
  4. hwflow serve               Run the HTTP API

Configuration is read from ./hwflow.yaml or ~/.hwflow/hwflow.yaml,
overridden by HWFLOW_* environment variables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Verbose = verbose
		config.Debug = debug

		path := configPath
		if path == "" {
			path = config.GetEnvPath()
		}

		var err error
		envConfig, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		logConfig := logger.DefaultConfig()
		logConfig.Debug = debug
		if envConfig.LogFormat != "" {
			logConfig.LogFormat = envConfig.LogFormat
		}
		logConfig.LogFile = envConfig.LogFile
		if err := logger.Init(logConfig); err != nil {
			return err
		}

		if envConfig.ConfigFile != "" {
			config.VerboseLog("Loaded configuration from %s", envConfig.ConfigFile)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./hwflow.yaml or ~/.hwflow/hwflow.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// getVersion returns the version string.
// Priority: build-time ldflags > VERSION file (for development)
func getVersion() string {
	if version != "" {
		return version
	}

	_, filename, _, ok := runtime.Caller(0)
	if ok {
		projectRoot := filepath.Dir(filepath.Dir(filename))
		content, err := os.ReadFile(filepath.Join(projectRoot, "VERSION"))
		if err == nil {
			return "v" + strings.TrimSpace(string(content)) + "-dev"
		}
	}

	return "unknown (build with: go build -ldflags \"-X 'github.com/kris-hansen/hwflow/cmd.version=vX.Y.Z'\")"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hwflow version: %s\n", getVersion())
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
