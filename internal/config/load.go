package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// defaultEndpointURL is the model serving endpoint used when none is
// configured.
const defaultEndpointURL = "https://dbc-32cf6ae7-cf82.staging.cloud.databricks.com/serving-endpoints/databricks-gpt-oss-120b/invocations"

// Load reads configuration from defaults, an optional config.yaml in the
// working directory, and environment variables with the EXCUSE_ prefix.
// Environment variables take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.provider", "databricks")
	v.SetDefault("llm.endpoint_url", defaultEndpointURL)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_seconds", 30)

	// Optionally read config.yaml from the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and environment cover everything.
	}

	// Configure environment variables
	v.SetEnvPrefix("EXCUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind nested keys so they resolve even when absent from the
	// config file.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "EXCUSE_SERVER_PORT"},
		{"server.log_level", "EXCUSE_SERVER_LOG_LEVEL"},
		{"llm.provider", "EXCUSE_LLM_PROVIDER"},
		{"llm.endpoint_url", "EXCUSE_LLM_ENDPOINT_URL"},
		{"llm.api_token", "EXCUSE_LLM_API_TOKEN"},
		{"llm.gemini_api_key", "EXCUSE_LLM_GEMINI_API_KEY"},
		{"llm.model_name", "EXCUSE_LLM_MODEL_NAME"},
		{"llm.max_tokens", "EXCUSE_LLM_MAX_TOKENS"},
		{"llm.temperature", "EXCUSE_LLM_TEMPERATURE"},
		{"llm.timeout_seconds", "EXCUSE_LLM_TIMEOUT_SECONDS"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
