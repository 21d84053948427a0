// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default values applied when the config file and environment are silent.
const (
	DefaultDatabasePath = "$HOME/.local/share/lens/lens.db"
	DefaultProvider     = "gemini"
	DefaultModel        = "gemini-2.5-flash"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// DatabaseConfig locates the on-device store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures the remote model.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	Endpoint  string `mapstructure:"endpoint"`
	Grounding bool   `mapstructure:"grounding"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.grounding", false)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load decodes v into a Config. The API key falls back to the API_KEY and
// GEMINI_API_KEY environment variables when the config leaves it empty.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = firstEnv("API_KEY", "GEMINI_API_KEY")
	}

	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
