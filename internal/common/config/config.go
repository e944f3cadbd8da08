// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Redis         RedisConfig             `mapstructure:"redis"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Analysis      AnalysisConfig          `mapstructure:"analysis"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Intake        IntakeConfig            `mapstructure:"intake"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Analysis Configuration ---

const (
	BackendRules  = "rules"
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

// AnalysisConfig selects the analyzer backend.
type AnalysisConfig struct {
	Backend string `mapstructure:"backend"`
	Timeout int    `mapstructure:"timeout"` // milliseconds, remote backends only
	// HeadlineSeed switches headline selection to a seeded random source when non-zero.
	HeadlineSeed int64 `mapstructure:"headline_seed"`
}

// ModelAPIConfig holds the settings of one hosted model API.
type ModelAPIConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	Gemini ModelAPIConfig `mapstructure:"gemini"`
	OpenAI ModelAPIConfig `mapstructure:"openai"`
}

// IntakeConfig holds settings of the draft store.
type IntakeConfig struct {
	DraftTTL  int    `mapstructure:"draft_ttl"` // milliseconds
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   struct {
		Path       string `mapstructure:"path"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
		Compress   bool   `mapstructure:"compress"`
	} `mapstructure:"file"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
}

// RemoteAPI returns the API settings of a remote backend.
func (c *Config) RemoteAPI(backend string) (ModelAPIConfig, error) {
	switch backend {
	case BackendGemini:
		return c.APIs.Gemini, nil
	case BackendOpenAI:
		return c.APIs.OpenAI, nil
	default:
		return ModelAPIConfig{}, fmt.Errorf("backend %q has no remote API settings", backend)
	}
}
