// Package config provides configuration management for tidyseal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppConfig is the per-user configuration stored in ~/.config/tidyseal/
type AppConfig struct {
	// ConfigDir is the path to the catalog repository (holds tidyseal.yaml)
	ConfigDir string `yaml:"config_dir,omitempty"`
	// Database is the override store path; empty uses DefaultDatabasePath
	Database string `yaml:"database,omitempty"`
	// DecorationLayout overrides the desktop's window button layout
	DecorationLayout string `yaml:"decoration_layout,omitempty"`
}

const (
	appConfigDir   = ".config/tidyseal"
	appConfigFile  = "config.yaml"
	repoConfigFile = "tidyseal.yaml"
	stateDir       = ".local/share/tidyseal"
	stateFile      = "overrides.db"
)

// RepoConfigFile is the catalog file name inside ConfigDir.
const RepoConfigFile = repoConfigFile

// LoadAppConfig loads the app configuration from ~/.config/tidyseal/config.yaml
func LoadAppConfig() (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	configPath := filepath.Join(home, appConfigDir, appConfigFile)

	data, err := os.ReadFile(configPath) //nolint:gosec // path is from user home dir, intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s - run 'tidyseal init' or create it manually", ErrAppConfigNotFound, configPath)
		}

		return nil, fmt.Errorf("reading app config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}

	cfg.ConfigDir = ExpandPath(cfg.ConfigDir, nil)
	cfg.Database = ExpandPath(cfg.Database, nil)

	if cfg.ConfigDir != "" {
		if _, err := os.Stat(cfg.ConfigDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("configurations directory does not exist: %s", cfg.ConfigDir)
		}
	}

	return &cfg, nil
}

// SaveAppConfig saves the app configuration to ~/.config/tidyseal/config.yaml
func SaveAppConfig(cfg *AppConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, appConfigFile)

	data, err := marshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := fmt.Sprintf("# tidyseal app configuration\n\n%s", string(data))

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetRepoConfigPath returns the path to the repository's tidyseal.yaml
func (a *AppConfig) GetRepoConfigPath() string {
	return filepath.Join(a.ConfigDir, repoConfigFile)
}

// DatabasePath returns the configured override store path, or the default.
func (a *AppConfig) DatabasePath() string {
	if a != nil && a.Database != "" {
		return a.Database
	}

	return DefaultDatabasePath()
}

// AppConfigPath returns the path where the app config is stored.
// Returns an empty string if the home directory cannot be determined.
func AppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, appConfigDir, appConfigFile)
}

// DefaultDatabasePath returns ~/.local/share/tidyseal/overrides.db, or a
// path in the temp dir when the home directory is unknown.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tidyseal", stateFile)
	}

	return filepath.Join(home, stateDir, stateFile)
}
