package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only supported catalog version.
const CurrentVersion = 1

// Config is the repository catalog (tidyseal.yaml).
type Config struct {
	Version       int           `yaml:"version"`
	Installations []string      `yaml:"installations,omitempty"`
	Applications  []Application `yaml:"applications,omitempty"`
	Permissions   []Permission  `yaml:"permissions,omitempty"`
}

// Load reads and parses the catalog at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user config, intentional
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a catalog from YAML and checks its version.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("%w %d (expected %d)", ErrUnsupportedVersion, cfg.Version, CurrentVersion)
	}

	return &cfg, nil
}

// InstallationDirs returns the configured installation roots with ~ and
// environment variables expanded.
func (c *Config) InstallationDirs() []string {
	dirs := make([]string, 0, len(c.Installations))
	for _, d := range c.Installations {
		dirs = append(dirs, ExpandPath(d, nil))
	}

	return dirs
}

// ExpandPath expands ~ and environment variables in a single path.
// This should be used when a path is needed for file operations.
// The path is kept unexpanded in the config to maintain portability.
func ExpandPath(path string, envVars map[string]string) string {
	if path == "" {
		return path
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Expand environment variables from the provided map
	for key, value := range envVars {
		path = strings.ReplaceAll(path, "$"+key, value)
	}

	// Also expand standard environment variables
	path = os.ExpandEnv(path)

	return path
}

// marshalYAML encodes a value to YAML with 2-space indentation.
func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
