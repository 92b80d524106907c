package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is used for the config file name and the user config directory
	AppName = "hwflow"

	// EnvPrefix is the prefix for environment overrides, e.g. HWFLOW_SERVER_PORT
	EnvPrefix = "HWFLOW"

	// GeminiAPIKeyVar is the credential required by the default fallback chain
	GeminiAPIKeyVar = "GEMINI_API_KEY"
	// OpenAIAPIKeyVar is the credential for gpt- and o-series models
	OpenAIAPIKeyVar = "OPENAI_API_KEY"
	// AWSRegionVar selects the Bedrock region; credentials come from the AWS default chain
	AWSRegionVar = "AWS_REGION"
	// OllamaHostVar points ollama/ models at a host other than the local default
	OllamaHostVar = "OLLAMA_HOST"

	// DefaultOllamaHost is where a local Ollama listens by default
	DefaultOllamaHost = "http://localhost:11434"
)

// DefaultFallbackModels is the order in which generation attempts models
var DefaultFallbackModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-latest",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro-latest",
}

// DefaultProbeModels is the list checked by the list-models endpoint
var DefaultProbeModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro-latest",
}

// ErrMissingCredential is matched by every MissingCredentialError
var ErrMissingCredential = errors.New("credential not configured")

// MissingCredentialError names the variable that has to be set
type MissingCredentialError struct {
	Variable string
}

func (e *MissingCredentialError) Error() string {
	return e.Variable + " is not configured"
}

// Is lets errors.Is match ErrMissingCredential
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// ModelsConfig lists the model identifiers used for generation and probing
type ModelsConfig struct {
	Fallback []string `mapstructure:"fallback" yaml:"fallback"`
	Probe    []string `mapstructure:"probe" yaml:"probe"`
}

// DocumentConfig controls how uploaded documents are folded into prompts
type DocumentConfig struct {
	MaxPromptChars int `mapstructure:"max_prompt_chars" yaml:"maxPromptChars"`
}

// EnvConfig is the complete runtime configuration
type EnvConfig struct {
	Environment string `mapstructure:"environment" yaml:"environment"` // "development" exposes error chains in responses
	LogFormat   string `mapstructure:"log_format" yaml:"logFormat"`
	LogFile     string `mapstructure:"log_file" yaml:"logFile"`

	GeminiAPIKey string `mapstructure:"gemini_api_key" yaml:"-"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" yaml:"-"`
	AWSRegion    string `mapstructure:"aws_region" yaml:"awsRegion"`
	OllamaHost   string `mapstructure:"ollama_host" yaml:"ollamaHost"`

	// OpenAIBaseURL points gpt- models at an OpenAI-compatible endpoint
	OpenAIBaseURL string `mapstructure:"openai_base_url" yaml:"openaiBaseURL"`

	Models   ModelsConfig   `mapstructure:"models" yaml:"models"`
	Document DocumentConfig `mapstructure:"document" yaml:"document"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`

	// ConfigFile is the file the values were read from, empty when only defaults and env applied
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// GetEnvPath returns the config file path from HWFLOW_CONFIG, or "" to search the default locations
func GetEnvPath() string {
	return os.Getenv(EnvPrefix + "_CONFIG")
}

// Load reads the configuration. An explicit path must exist; otherwise
// ./hwflow.yaml and ~/.hwflow/hwflow.yaml are tried and a missing file is not an error.
func Load(path string) (*EnvConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Provider credentials keep their conventional unprefixed names
	_ = v.BindEnv("gemini_api_key", GeminiAPIKeyVar, EnvPrefix+"_"+GeminiAPIKeyVar)
	_ = v.BindEnv("openai_api_key", OpenAIAPIKeyVar, EnvPrefix+"_"+OpenAIAPIKeyVar)
	_ = v.BindEnv("openai_base_url", "OPENAI_BASE_URL", EnvPrefix+"_OPENAI_BASE_URL")
	_ = v.BindEnv("aws_region", AWSRegionVar, "AWS_DEFAULT_REGION")
	_ = v.BindEnv("ollama_host", OllamaHostVar, EnvPrefix+"_"+OllamaHostVar)

	configFile := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		configFile = v.ConfigFileUsed()
	}

	var cfg EnvConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.ConfigFile = configFile

	if cfg.GeminiAPIKey == "" {
		if key, err := Credentials.Get(GeminiAPIKeyVar); err == nil {
			DebugLog("Using %s from the system keyring", GeminiAPIKeyVar)
			cfg.GeminiAPIKey = key
		} else {
			DebugLog("No %s in keyring: %v", GeminiAPIKeyVar, err)
		}
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "production")
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("aws_region", "")
	v.SetDefault("ollama_host", DefaultOllamaHost)

	v.SetDefault("models.fallback", DefaultFallbackModels)
	v.SetDefault("models.probe", DefaultProbeModels)
	v.SetDefault("document.max_prompt_chars", 5000)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Requested-With", "Accept"})
	v.SetDefault("server.cors.max_age", 3600)
}

// IsDevelopment reports whether error responses may include internal detail
func (c *EnvConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// GetServerConfig returns the server section
func (c *EnvConfig) GetServerConfig() *ServerConfig {
	return &c.Server
}

// HasGeminiKey reports whether the default chain's credential is present
func (c *EnvConfig) HasGeminiKey() bool {
	return c.GeminiAPIKey != ""
}

// CredentialFor returns the credential configured for a provider.
// Providers without a credential requirement return "", nil.
func (c *EnvConfig) CredentialFor(provider string) (string, error) {
	switch provider {
	case "google":
		if c.GeminiAPIKey == "" {
			return "", &MissingCredentialError{Variable: GeminiAPIKeyVar}
		}
		return c.GeminiAPIKey, nil
	case "openai":
		if c.OpenAIAPIKey == "" {
			return "", &MissingCredentialError{Variable: OpenAIAPIKeyVar}
		}
		return c.OpenAIAPIKey, nil
	case "bedrock":
		if c.AWSRegion == "" {
			return "", &MissingCredentialError{Variable: AWSRegionVar}
		}
		return c.AWSRegion, nil
	case "ollama":
		if c.OllamaHost == "" {
			return DefaultOllamaHost, nil
		}
		return c.OllamaHost, nil
	}
	return "", nil
}
