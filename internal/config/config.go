package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
// It is constructed once at startup and read-only afterwards.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
//
// APIToken and GeminiAPIKey deliberately carry no "required" tag: a missing
// credential is a per-request failure surfaced by the generator, not a
// process startup failure.
type LLMConfig struct {
	// Provider selects the generation backend: "databricks" or "gemini".
	Provider string `mapstructure:"provider" validate:"required,oneof=databricks gemini"`

	// EndpointURL is the model serving endpoint invoked by the databricks
	// backend.
	EndpointURL string `mapstructure:"endpoint_url" validate:"required,url"`

	// APIToken is the bearer token for the databricks backend.
	APIToken string `mapstructure:"api_token"`

	// GeminiAPIKey is the API key for the gemini backend.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// ModelName is the model used by the gemini backend.
	ModelName string `mapstructure:"model_name"`

	MaxTokens      int     `mapstructure:"max_tokens"      validate:"gt=0"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gt=0"`
}
