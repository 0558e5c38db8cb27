package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
	"github.com/k1LoW/trendicon/version"
)

var profileRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type Config struct {
	// Directory the icon set is written to
	OutDir string `yaml:"outDir,omitempty" json:"outDir,omitempty"`
	// Whether to append JSON logs to the state directory
	LogFile *bool `yaml:"logFile,omitempty" json:"logFile,omitempty"`
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/trendicon/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/trendicon/config.yml
// Environment variables such as ${HOME} in the file are expanded.
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		// allow only alphanumeric characters, underscores, and hyphens
		if !profileRe.MatchString(profile) {
			return nil, fmt.Errorf("invalid profile name: %s, only alphanumeric characters, underscores, and hyphens are allowed", profile)
		}
		configBasePaths = append(configBasePaths, filepath.Join(ConfigHomePath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(ConfigHomePath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
				}
				return cfg, nil
			}
		}
	}
	return cfg, nil
}

// LogFileEnabled reports whether logs should also be written to the state directory.
func (c *Config) LogFileEnabled() bool {
	return c.LogFile != nil && *c.LogFile
}

// ConfigHomePath returns the path to the configuration directory.
func ConfigHomePath() string {
	return xdgPath("XDG_CONFIG_HOME", ".config")
}

// StateHomePath returns the path to the state directory.
func StateHomePath() string {
	return xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgPath(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return filepath.Join(v, version.Name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), version.Name)
	}
	return filepath.Join(home, fallback, version.Name)
}
