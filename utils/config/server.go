package config

import (
	"fmt"
	"time"
)

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Port         int           `mapstructure:"port" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"writeTimeout"` // Upper bound for one generation request
	MaxUploadMB  int64         `mapstructure:"max_upload_mb" yaml:"maxUploadMB"`  // Multipart memory budget, larger parts spill to disk
	CORS         CORS          `mapstructure:"cors" yaml:"cors"`
}

// CORS holds Cross-Origin Resource Sharing settings
type CORS struct {
	Enabled        bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowed_methods" yaml:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowed_headers" yaml:"allowedHeaders"`
	MaxAge         int      `mapstructure:"max_age" yaml:"maxAge"`
}

// Addr returns the listen address for the configured port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
