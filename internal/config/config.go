package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Defaults for the recommendation re-ranking budget
const (
	DefaultTimeoutSeconds = 8
	DefaultMaxRetries     = 1
)

// Recommendations configures the optional external re-ranking pass.
// The API key is deliberately not part of the yaml file; it comes from the
// environment (GEMINI_API_KEY) so the config can be committed.
type Recommendations struct {
	Enabled        bool   `yaml:"enabled"`
	Provider       string `yaml:"provider,omitempty"`
	Model          string `yaml:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty" validate:"omitempty,min=1"`
	// MaxRetries is a pointer so an explicit 0 survives defaulting
	MaxRetries *int `yaml:"maxRetries,omitempty" validate:"omitempty,min=0"`
}

// Identity configures the external identity provider. The service key
// comes from the environment (IDENTITY_SERVICE_KEY).
type Identity struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

// SeriesOverride pins a recurrence rule used when defining shift series
type SeriesOverride struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string           `yaml:"databaseURL" validate:"required"`
	Recommendations Recommendations  `yaml:"recommendations"`
	Identity        Identity         `yaml:"identity"`
	SeriesOverrides []SeriesOverride `yaml:"seriesOverrides,omitempty" validate:"dive"`
}

// Timeout returns the configured re-ranking timeout as a duration
func (r Recommendations) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Retries returns the retry budget with the default applied
func (r Recommendations) Retries() int {
	if r.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *r.MaxRetries
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from careshift_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.SeriesOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in seriesOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Recommendations.Provider == "" {
		cfg.Recommendations.Provider = "firebase_gemini"
	}
	if cfg.Recommendations.Model == "" {
		cfg.Recommendations.Model = "gemini-2.5-flash"
	}
	if cfg.Recommendations.TimeoutSeconds <= 0 {
		cfg.Recommendations.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// findConfigFile searches for careshift_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "careshift_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
