package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Note: Tests that modify HOME/USERPROFILE environment variables cannot run in
// parallel because os.Setenv affects the entire process.

// setTestHome overrides the home directory for tests on all platforms.
// On Unix, os.UserHomeDir() reads HOME; on Windows it reads USERPROFILE.
func setTestHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("HOME", dir)

	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
	}
}

func TestSaveAppConfig(t *testing.T) {
	// Create a temporary home directory
	tmpDir := t.TempDir()

	// Override home for this test
	setTestHome(t, tmpDir)

	cfg := &AppConfig{
		ConfigDir: "/path/to/configs",
	}

	err := SaveAppConfig(cfg)
	if err != nil {
		t.Fatalf("SaveAppConfig() error = %v", err)
	}

	// Verify file was created
	configPath := filepath.Join(tmpDir, appConfigDir, appConfigFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	// Verify content
	data, err := os.ReadFile(configPath) //nolint:gosec // test file path is controlled
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "config_dir: /path/to/configs") {
		t.Errorf("Config file should contain config_dir, got: %s", content)
	}

	if !strings.Contains(content, "# tidyseal app configuration") {
		t.Error("Config file should have header comment")
	}
}

func TestLoadAppConfig(t *testing.T) {
	tmpDir := t.TempDir()

	// Override home
	setTestHome(t, tmpDir)

	// Create config directory
	configDir := filepath.Join(tmpDir, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}

	// Create a configs directory that will be referenced
	configsRepo := filepath.Join(tmpDir, "my-catalog")
	if err := os.MkdirAll(configsRepo, 0750); err != nil {
		t.Fatal(err)
	}

	// Write app config
	configContent := "config_dir: " + configsRepo + "\n"
	configPath := filepath.Join(configDir, appConfigFile)
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatal(err)
	}

	// Load it
	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.ConfigDir != configsRepo {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, configsRepo)
	}
}

func TestLoadAppConfigWithTilde(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	// Create config directory
	configDir := filepath.Join(tmpDir, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}

	// Create a configs directory
	configsRepo := filepath.Join(tmpDir, "catalog")
	if err := os.MkdirAll(configsRepo, 0750); err != nil {
		t.Fatal(err)
	}

	// Write app config with tilde
	configContent := "config_dir: ~/catalog\n"
	configPath := filepath.Join(configDir, appConfigFile)
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	expected := filepath.Join(tmpDir, "catalog")
	if cfg.ConfigDir != expected {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, expected)
	}
}

func TestLoadAppConfigNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	_, err := LoadAppConfig()
	if err == nil {
		t.Error("LoadAppConfig() should error when config doesn't exist")
	}

	if !errors.Is(err, ErrAppConfigNotFound) {
		t.Errorf("error should wrap ErrAppConfigNotFound, got: %v", err)
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	configDir := filepath.Join(tmpDir, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}

	// Write invalid YAML
	configPath := filepath.Join(configDir, appConfigFile)
	if err := os.WriteFile(configPath, []byte("invalid: yaml: content:"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig()
	if err == nil {
		t.Error("LoadAppConfig() should error for invalid YAML")
	}
}

func TestLoadAppConfigOnlyDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	configDir := filepath.Join(tmpDir, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(configDir, appConfigFile)
	content := "database: ~/state/perms.db\ndecoration_layout: close:menu\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.ConfigDir != "" {
		t.Errorf("ConfigDir = %q, want empty", cfg.ConfigDir)
	}
	if want := filepath.Join(tmpDir, "state", "perms.db"); cfg.DatabasePath() != want {
		t.Errorf("DatabasePath() = %q, want %q", cfg.DatabasePath(), want)
	}
	if cfg.DecorationLayout != "close:menu" {
		t.Errorf("DecorationLayout = %q, want %q", cfg.DecorationLayout, "close:menu")
	}
}

func TestDatabasePathDefault(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	var cfg *AppConfig
	want := filepath.Join(tmpDir, stateDir, stateFile)

	if got := cfg.DatabasePath(); got != want {
		t.Errorf("DatabasePath() on nil = %q, want %q", got, want)
	}
}

//nolint:dupl // similar test structure is intentional
func TestLoadAppConfigNonexistentConfigDir(t *testing.T) {
	tmpDir := t.TempDir()

	setTestHome(t, tmpDir)

	configDir := filepath.Join(tmpDir, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}

	// Write config pointing to nonexistent directory
	configPath := filepath.Join(configDir, appConfigFile)
	if err := os.WriteFile(configPath, []byte("config_dir: /nonexistent/path\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig()
	if err == nil {
		t.Error("LoadAppConfig() should error when config_dir doesn't exist")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Error should mention 'does not exist', got: %v", err)
	}
}

func TestGetRepoConfigPath(t *testing.T) {
	t.Parallel()

	configDir := filepath.Join("/home", "user", "catalog")
	cfg := &AppConfig{
		ConfigDir: configDir,
	}

	got := cfg.GetRepoConfigPath()
	want := filepath.Join(configDir, "tidyseal.yaml")

	if got != want {
		t.Errorf("GetRepoConfigPath() = %q, want %q", got, want)
	}
}

func TestAppConfigPath(t *testing.T) {
	// Cannot run in parallel - uses os.UserHomeDir()
	path := AppConfigPath()

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, appConfigDir, appConfigFile)

	if path != expected {
		t.Errorf("AppConfigPath() = %q, want %q", path, expected)
	}
}
