package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user configuration loaded from config.yaml.
type Config struct {
	LogLevel            string `yaml:"log_level"`
	Theme               string `yaml:"theme"`
	SetupScript         string `yaml:"setup_script"`
	SetupTimeoutSeconds int    `yaml:"setup_timeout_seconds"`
	TestTimeoutSeconds  int    `yaml:"test_timeout_seconds"`
	BaseBranch          string `yaml:"base_branch"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:            "info",
		Theme:               "mocha",
		SetupScript:         filepath.Join("scripts", "worktree-setup"),
		SetupTimeoutSeconds: 600,
		TestTimeoutSeconds:  900,
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir loads config.yaml from the given directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg.withDefaults(), nil
}

// withDefaults fills zero values left by a partial config file.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.SetupTimeoutSeconds <= 0 {
		c.SetupTimeoutSeconds = d.SetupTimeoutSeconds
	}
	if c.TestTimeoutSeconds <= 0 {
		c.TestTimeoutSeconds = d.TestTimeoutSeconds
	}
	return c
}

// Validate rejects values that would break the provisioning pipeline.
func (c *Config) Validate() error {
	if filepath.IsAbs(c.SetupScript) {
		return fmt.Errorf("setup_script must be a path relative to the worktree root, got %q", c.SetupScript)
	}
	return nil
}

// SetupTimeout returns the per-action timeout for setup subprocesses.
func (c *Config) SetupTimeout() time.Duration {
	return time.Duration(c.SetupTimeoutSeconds) * time.Second
}

// TestTimeout returns the timeout for the baseline test subprocess.
func (c *Config) TestTimeout() time.Duration {
	return time.Duration(c.TestTimeoutSeconds) * time.Second
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "groundwork", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "groundwork", "config.yaml")
	}

	return filepath.Join(home, ".config", "groundwork", "config.yaml")
}
