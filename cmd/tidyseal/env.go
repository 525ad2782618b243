package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AntoineGS/tidyseal/internal/applications"
	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/AntoineGS/tidyseal/internal/permissions"
	"github.com/AntoineGS/tidyseal/internal/platform"
	"github.com/AntoineGS/tidyseal/internal/state"
)

// ErrUnknownApplication is returned for an application that is neither
// installed, declared in the catalog, nor present in the override store.
var ErrUnknownApplication = errors.New("unknown application")

var catalogLoader config.Loader = config.FileLoader{}

// environment is everything a command needs, wired from flags, the app
// config and the host.
type environment struct {
	appCfg *config.AppConfig
	cfg    *config.Config
	plat   *platform.Platform
	store  *state.Store
	apps   *applications.Source
	perms  *permissions.Model
}

func getConfigDir(appCfg *config.AppConfig) (string, error) {
	// 1. Use --dir flag if provided
	if configDir != "" {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return "", fmt.Errorf("invalid config directory: %w", err)
		}
		return absPath, nil
	}

	// 2. Fall back to the app config, which may not name one
	return appCfg.ConfigDir, nil
}

func loadAppConfig() (*config.AppConfig, error) {
	appCfg, err := config.LoadAppConfig()
	if errors.Is(err, config.ErrAppConfigNotFound) {
		slog.Debug("no app config, using defaults", slog.String("path", config.AppConfigPath()))
		return &config.AppConfig{}, nil
	}

	return appCfg, err
}

// loadCatalog reads <dir>/tidyseal.yaml. A missing directory or file yields
// an empty catalog.
func loadCatalog(dir string) (*config.Config, error) {
	if dir == "" {
		return &config.Config{Version: config.CurrentVersion}, nil
	}

	path := filepath.Join(dir, config.RepoConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("no catalog in config directory", slog.String("path", path))
		return &config.Config{Version: config.CurrentVersion}, nil
	}

	cfg, err := catalogLoader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return cfg, nil
}

func openEnvironment(plat *platform.Platform) (*environment, error) {
	appCfg, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	dir, err := getConfigDir(appCfg)
	if err != nil {
		return nil, err
	}

	cfg, err := loadCatalog(dir)
	if err != nil {
		return nil, err
	}

	if len(cfg.Installations) > 0 {
		plat = plat.WithInstallations(cfg.InstallationDirs())
	}
	if flatpakVersion != "" {
		plat = plat.WithFlatpakVersion(flatpakVersion)
	}

	defs := cfg.Permissions
	if len(defs) == 0 {
		defs = permissions.Builtin()
	}

	path := dbPath
	if path == "" {
		path = appCfg.DatabasePath()
	}

	store, err := state.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening override store %s: %w", path, err)
	}

	perms, err := permissions.New(defs, store, permissions.Options{
		FlatpakVersion: plat.FlatpakVersion,
		Logger:         slog.Default(),
	})
	if err != nil {
		_ = store.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, err
	}

	slog.Debug("environment ready",
		slog.String("config_dir", dir),
		slog.String("database", path),
		slog.String("flatpak", plat.FlatpakVersion),
		slog.String("desktop", plat.Desktop),
		slog.Bool("display", plat.HasDisplay),
		slog.Int("installations", len(plat.Installations)))

	return &environment{
		appCfg: appCfg,
		cfg:    cfg,
		plat:   plat,
		store:  store,
		apps:   applications.New(cfg.Applications, plat.Installations, slog.Default()),
		perms:  perms,
	}, nil
}

// knownApplication accepts ids that are listed or have stored overrides.
func (e *environment) knownApplication(id string) error {
	if _, ok := e.apps.Find(id); ok {
		return nil
	}

	ids, err := e.store.ListApplications()
	if err != nil {
		return err
	}

	for _, stored := range ids {
		if stored == id {
			return nil
		}
	}

	if s := suggest(id, applicationIDs(e.apps.All())); len(s) > 0 {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownApplication, id, joinQuoted(s))
	}

	return fmt.Errorf("%w: %s", ErrUnknownApplication, id)
}

func (e *environment) Close() error {
	if e.perms != nil {
		e.perms.Shutdown()
	}

	if err := e.store.Close(); err != nil {
		return err
	}

	return e.perms.Err()
}
