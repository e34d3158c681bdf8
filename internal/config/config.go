// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/filebridge/internal/types"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultPort     = 8080
	DefaultMaxFiles = 1000
)

// Config represents the configuration that can be loaded from a JSON file and the environment.
// All fields are optional; missing values use defaults.
type Config struct {
	// Loader
	FileLoadRoot string `json:"file_load_root,omitempty" validate:"omitempty,urlref"` // Root URL (absolute, or a reference resolved against the request origin)
	FetchTimeout string `json:"fetch_timeout,omitempty"`                           // Per-request timeout; empty leaves it to the transport

	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Directory import
	MaxFiles int `json:"max_files,omitempty" validate:"gte=0"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Log request shapes and summaries
}

// Environment variable names read by FromEnv and CredentialsFromEnv.
const (
	EnvFileLoadRoot = "FILELOADROOT"
	EnvPort         = "PORT"
	EnvVerbose      = "FILEBRIDGE_VERBOSE"
	EnvFetchTimeout = "FILEBRIDGE_FETCH_TIMEOUT"
	EnvMaxFiles     = "FILEBRIDGE_MAX_FILES"
	EnvToken        = "FILEBRIDGE_TOKEN"
	EnvRole         = "FILEBRIDGE_ROLE"
	EnvDatabase     = "FILEBRIDGE_DATABASE"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:     DefaultPort,
		MaxFiles: DefaultMaxFiles,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Malformed numbers are ignored.
func FromEnv() Config {
	cfg := Config{
		FileLoadRoot: os.Getenv(EnvFileLoadRoot),
		FetchTimeout: os.Getenv(EnvFetchTimeout),
	}
	if v, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvMaxFiles)); err == nil {
		cfg.MaxFiles = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvVerbose)); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// Load resolves the effective configuration: the optional JSON file at path,
// then the environment, then the built-in defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := FromEnv()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		envVerbose := cfg.Verbose
		cfg = fileCfg.MergeWithDefaults(cfg)
		cfg.Verbose = cfg.Verbose || envVerbose
	}
	cfg = cfg.MergeWithDefaults(Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("config error: 'fetch_timeout' %w", err)
	}

	return nil
}

// newValidator returns a validator that also knows the "urlref" tag: any string
// that parses as a URL reference, absolute or relative.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("urlref", func(fl validator.FieldLevel) bool {
		_, err := url.Parse(fl.Field().String())
		return err == nil
	})
	return validate
}

// Timeout parses FetchTimeout. An empty value means no client timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.FetchTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0, fmt.Errorf("must be a duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("must be non-negative, got %s", d)
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.FileLoadRoot == "" {
		result.FileLoadRoot = defaults.FileLoadRoot
	}
	if result.FetchTimeout == "" {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxFiles == 0 {
		result.MaxFiles = defaults.MaxFiles
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// CredentialsFromEnv returns the credential triple from the environment, or nil when none is set.
func CredentialsFromEnv() *types.Credentials {
	creds := &types.Credentials{
		Token:    os.Getenv(EnvToken),
		Role:     os.Getenv(EnvRole),
		Database: os.Getenv(EnvDatabase),
	}
	if creds.IsZero() {
		return nil
	}
	return creds
}
