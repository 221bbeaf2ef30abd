// Package config: Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	globalConfig *Config
	configOnce   sync.Once
)

// Config represents the complete engine configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Loader struct {
		// PdftotextPath overrides the pdftotext binary looked up on PATH.
		PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
		// KeepExtractedText writes the raw extracted text next to the
		// input for debugging.
		KeepExtractedText bool `mapstructure:"keep_extracted_text" yaml:"keep_extracted_text"`
	} `mapstructure:"loader" yaml:"loader"`

	Classifier struct {
		// RulesFile is an optional YAML file with extra keyword rules
		// layered before the built-in rule table.
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"classifier" yaml:"classifier"`

	AI struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Model            string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional config file, then environment.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.mpesalytics")
	v.AddConfigPath(".mpesalytics")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MPESA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// API key and logging settings also honor their unprefixed
	// environment variables for .env compatibility.
	for key, envs := range map[string][]string{
		"ai.api_key": {"GEMINI_API_KEY"},
		"log.level":  {"MPESA_LOG_LEVEL", "LOG_LEVEL"},
		"log.format": {"MPESA_LOG_FORMAT", "LOG_FORMAT"},
	} {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetGlobalConfig returns the global configuration instance, initializing
// it if necessary. An invalid configuration is reported once and replaced
// by the defaults so the commands stay usable.
func GetGlobalConfig() *Config {
	configOnce.Do(func() {
		var err error
		globalConfig, err = InitializeConfig()
		if err != nil {
			Logger.Warnf("Failed to initialize configuration, using defaults: %v", err)
			globalConfig = defaultConfig()
		}
	})
	return globalConfig
}

// ConfigureLoggingFromConfig applies the loaded log settings to the global
// logger and returns it.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if config.Log.Format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// defaultConfig returns a Config carrying only the defaults.
func defaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// Defaults always unmarshal; reaching this means a programming error.
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return &config
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("loader.pdftotext_path", "pdftotext")
	v.SetDefault("loader.keep_extracted_text", false)

	v.SetDefault("classifier.rules_file", "")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.fallback_category", "Uncategorized")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}
