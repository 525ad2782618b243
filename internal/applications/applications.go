// Package applications enumerates the applications shown by the editor: the
// ones declared in the catalog followed by the Flatpak applications installed
// on the host.
package applications

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AntoineGS/tidyseal/internal/config"
)

// Source lists applications. The list is computed on the first call to All
// and kept for the session.
type Source struct {
	logger        *slog.Logger
	catalog       []config.Application
	installations []string

	loaded bool
	apps   []config.Application
}

// New returns a source over catalog entries and installation roots.
func New(catalog []config.Application, installations []string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}

	return &Source{
		logger:        logger,
		catalog:       catalog,
		installations: installations,
	}
}

// All returns catalog applications in declaration order, then installed
// applications sorted by ID. IDs are not de-duplicated.
func (s *Source) All() []config.Application {
	if s.loaded {
		return s.apps
	}
	s.loaded = true

	apps := append([]config.Application(nil), s.catalog...)

	var installed []config.Application
	for _, root := range s.installations {
		found, err := Scan(root)
		if err != nil {
			s.logger.Warn("skipping installation",
				slog.String("root", root),
				slog.String("error", err.Error()))
			continue
		}
		installed = append(installed, found...)
	}

	sort.SliceStable(installed, func(i, j int) bool {
		return installed[i].ID < installed[j].ID
	})

	s.apps = append(apps, installed...)

	s.logger.Debug("applications loaded",
		slog.Int("catalog", len(s.catalog)),
		slog.Int("installed", len(installed)))

	return s.apps
}

// Find returns the first application with id.
func (s *Source) Find(id string) (config.Application, bool) {
	for _, app := range s.All() {
		if app.ID == id {
			return app, true
		}
	}

	return config.Application{}, false
}

// Scan lists the applications of one Flatpak installation. Only
// applications with an active deployment are returned. A missing root is not
// an error.
func Scan(root string) ([]config.Application, error) {
	appDir := filepath.Join(root, "app")

	entries, err := os.ReadDir(appDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", appDir, err)
	}

	var apps []config.Application
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		id := e.Name()
		active := filepath.Join(appDir, id, "current", "active")
		if _, err := os.Stat(active); err != nil {
			continue
		}

		desktop := filepath.Join(active, "export", "share", "applications", id+".desktop")
		apps = append(apps, config.Application{
			ID:        id,
			Name:      desktopName(desktop),
			ThemePath: filepath.Join(active, "export", "share", "icons"),
		})
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })

	return apps, nil
}

// desktopName returns the untranslated Name= of the [Desktop Entry] group,
// or "" when the file cannot be read.
func desktopName(path string) string {
	f, err := os.Open(path) //nolint:gosec // path is built from the installation layout
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	inEntry := false
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			inEntry = line == "[Desktop Entry]"
			continue
		}

		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(key) == "Name" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
