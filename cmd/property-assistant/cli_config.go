package main

import (
	"fmt"
	"strings"
	"time"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
)

// cliFlags holds raw flag values before they are folded into a Config.
type cliFlags struct {
	configFile   string
	profileFile  string
	outputPath   string
	pollInterval time.Duration
	pollTimeout  time.Duration
	maxPolls     int
	verbose      bool
	skipFetch    bool
}

func defaultFlags() cliFlags {
	defaults := configpkg.DefaultConfig()
	return cliFlags{
		configFile:   defaults.ConfigFile,
		outputPath:   defaults.OutputPath,
		pollInterval: defaults.PollInterval,
	}
}

// buildConfig loads flags, env and the config files into runtime config.
// getenv is os.Getenv outside tests.
func buildConfig(flags cliFlags, getenv func(string) string) (configpkg.Config, error) {
	cfg := configpkg.DefaultConfig()
	cfg.ConfigFile = flags.configFile
	cfg.ProfileFile = flags.profileFile
	cfg.OutputPath = flags.outputPath
	cfg.PollInterval = flags.pollInterval
	cfg.PollTimeout = flags.pollTimeout
	cfg.MaxPollAttempts = flags.maxPolls
	cfg.Verbose = flags.verbose
	cfg.SkipFetch = flags.skipFetch
	cfg.APIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))
	cfg.BaseURL = strings.TrimSpace(getenv("OPENAI_BASE_URL"))
	cfg.Model = strings.TrimSpace(getenv("OPENAI_MODEL"))
	cfg = configpkg.Normalize(cfg)

	if cfg.ProfileFile != "" {
		profile, err := configpkg.LoadProfile(cfg.ProfileFile)
		if err != nil {
			return configpkg.Config{}, fmt.Errorf("load profile: %w", err)
		}
		cfg.Profile = profile
		if cfg.Model != "" {
			cfg.Profile.Model = cfg.Model
		}
	}

	if !cfg.SkipFetch {
		proxy, err := configpkg.LoadProxyFile(cfg.ConfigFile)
		if err != nil {
			return configpkg.Config{}, err
		}
		if _, err := proxy.URL(); err != nil {
			return configpkg.Config{}, err
		}
		cfg.Proxy = proxy
	}

	if err := configpkg.Validate(cfg); err != nil {
		return configpkg.Config{}, err
	}
	return cfg, nil
}
