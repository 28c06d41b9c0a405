package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = `# ccfiles configuration.
# Values here are defaults; command line flags override them.

# Traverse hidden directories other than .claude.
include_hidden: false

# Extra directory name patterns to skip while scanning (glob syntax).
# exclude:
#   - "*.bak"
#   - "scratch-*"

# Color theme: auto, dark, light or ascii.
theme: auto

# Append structured logs to this file. Empty disables logging.
log_file: ""
`

type Config struct {
	IncludeHidden bool     `yaml:"include_hidden"`
	Exclude       []string `yaml:"exclude"`
	Theme         string   `yaml:"theme"`
	LogFile       string   `yaml:"log_file"`
}

func defaultConfigPath() (string, error) {
	cfgHome := os.Getenv("XDG_CONFIG_HOME")
	if cfgHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cfgHome = filepath.Join(home, ".config")
	}
	return filepath.Join(cfgHome, "ccfiles", "config.yaml"), nil
}

// Path returns the full path to the config file, using the same rules as LoadOrInit.
func Path() (string, error) {
	return defaultConfigPath()
}

// LoadOrInit reads the config from its default location. On first run
// it writes a commented default file so the app starts immediately.
func LoadOrInit() (*Config, error) {
	return loadConfig("")
}

// LoadFrom reads the config from the provided path. When path is empty
// it falls back to the default location.
func LoadFrom(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	resolved := strings.TrimSpace(path)
	explicit := resolved != ""
	if !explicit {
		var err error
		resolved, err = defaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		// A path the user named must exist; only the default path is
		// created on demand.
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		fmt.Println("No config found. Creating one with defaults.")
		if err := writeDefaultConfig(resolved); err != nil {
			return nil, err
		}
		fmt.Println("Config saved to", resolved)
		data = []byte(defaultConfigFile)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ensureDefaults()
	return cfg, nil
}

func (c *Config) ensureDefaults() {
	if v := strings.TrimSpace(os.Getenv("CCFILES_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("CCFILES_LOG_FILE")); v != "" {
		c.LogFile = v
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = "auto"
	}
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(defaultConfigFile), 0o644)
}
