package config

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultConfigFile   = "config.ini"
	DefaultOutputPath   = "details.json"
	DefaultPollInterval = 2 * time.Second
)

// Config holds all runtime configuration, built once at startup and passed
// explicitly to the components that need it.
type Config struct {
	ConfigFile  string
	ProfileFile string
	OutputPath  string
	SkipFetch   bool
	Verbose     bool

	PollInterval time.Duration
	// PollTimeout and MaxPollAttempts bound the wait for a run; zero means no bound.
	PollTimeout     time.Duration
	MaxPollAttempts int

	APIKey  string
	BaseURL string
	Model   string

	Proxy   ProxyConfig
	Profile Profile
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		ConfigFile:   DefaultConfigFile,
		OutputPath:   DefaultOutputPath,
		PollInterval: DefaultPollInterval,
		Profile:      DefaultProfile(),
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.ConfigFile = strings.TrimSpace(cfg.ConfigFile)
	cfg.ProfileFile = strings.TrimSpace(cfg.ProfileFile)
	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Proxy = cfg.Proxy.normalize()

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = DefaultConfigFile
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollTimeout < 0 {
		cfg.PollTimeout = 0
	}
	if cfg.MaxPollAttempts < 0 {
		cfg.MaxPollAttempts = 0
	}

	cfg.Profile = cfg.Profile.withDefaults(DefaultProfile())
	if cfg.Model != "" {
		cfg.Profile.Model = cfg.Model
	}
	return cfg
}

// Validate reports the first missing required setting.
func Validate(cfg Config) error {
	if cfg.APIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	if strings.TrimSpace(cfg.Profile.Model) == "" {
		return errors.New("assistant model is not set")
	}
	if strings.TrimSpace(cfg.Profile.Instructions) == "" {
		return errors.New("assistant instructions are empty")
	}
	return nil
}
