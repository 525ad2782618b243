// Package platform provides OS, desktop, and Flatpak installation detection.
package platform

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Supported operating system identifiers.
const (
	// OSLinux represents Linux operating systems
	OSLinux = "linux"
	// OSWindows represents Windows operating systems
	OSWindows = "windows"
)

// Default Flatpak installation roots.
const (
	SystemInstallation = "/var/lib/flatpak"
	userInstallation   = ".local/share/flatpak"
)

// commandTimeout bounds helper commands such as `flatpak --version`.
const commandTimeout = 2 * time.Second

// Platform holds detected platform information: operating system, user,
// display availability, and the Flatpak runtime found on the host.
type Platform struct {
	OS             string
	User           string
	Desktop        string
	FlatpakVersion string
	Installations  []string
	HasDisplay     bool
}

// Detect detects the current platform characteristics.
func Detect() *Platform {
	p := &Platform{
		OS:      detectOS(),
		User:    detectUser(),
		Desktop: os.Getenv("XDG_CURRENT_DESKTOP"),
	}

	p.HasDisplay = detectDisplay(p.OS)

	if p.OS == OSLinux {
		p.FlatpakVersion = detectFlatpakVersion()
		p.Installations = detectInstallations()
	}

	return p
}

func detectUser() string {
	u, err := user.Current()
	if err != nil {
		slog.Debug("unable to detect current user",
			slog.String("error", err.Error()),
			slog.String("fallback", "empty"))
		return ""
	}

	return u.Username
}

func detectOS() string {
	if runtime.GOOS == "windows" {
		return OSWindows
	}

	// Also check OS environment variable (for cross-platform scripts)
	osEnv := os.Getenv("OS")
	if strings.Contains(strings.ToLower(osEnv), "windows") {
		return OSWindows
	}

	return OSLinux
}

// detectDisplay checks whether a display server is available.
// On Linux, it checks for DISPLAY (X11) or WAYLAND_DISPLAY (Wayland).
// On Windows, it always returns true.
func detectDisplay(osType string) bool {
	if osType == OSWindows {
		return true
	}

	if os.Getenv("DISPLAY") != "" {
		return true
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}

	return false
}

func detectFlatpakVersion() string {
	if !IsCommandAvailable("flatpak") {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "flatpak", "--version").Output()
	if err != nil {
		slog.Debug("unable to detect flatpak version",
			slog.String("error", err.Error()),
			slog.String("fallback", "empty"))
		return ""
	}

	return parseFlatpakVersion(string(output))
}

// parseFlatpakVersion extracts "1.14.4" from "Flatpak 1.14.4\n".
func parseFlatpakVersion(output string) string {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return ""
	}

	return fields[len(fields)-1]
}

// detectInstallations returns existing installation roots: the user
// installation first, then the system one. FLATPAK_USER_DIR and
// FLATPAK_SYSTEM_DIR override the defaults like they do for flatpak itself.
func detectInstallations() []string {
	var candidates []string

	if dir := os.Getenv("FLATPAK_USER_DIR"); dir != "" {
		candidates = append(candidates, dir)
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, userInstallation))
	}

	if dir := os.Getenv("FLATPAK_SYSTEM_DIR"); dir != "" {
		candidates = append(candidates, dir)
	} else {
		candidates = append(candidates, SystemInstallation)
	}

	var found []string
	for _, dir := range candidates {
		if info, err := os.Stat(filepath.Join(dir, "app")); err == nil && info.IsDir() {
			found = append(found, dir)
		}
	}

	return found
}

// WithFlatpakVersion returns a copy of the Platform with FlatpakVersion overridden.
func (p *Platform) WithFlatpakVersion(version string) *Platform {
	newP := *p
	newP.FlatpakVersion = version
	newP.Installations = append([]string(nil), p.Installations...)

	return &newP
}

// WithInstallations returns a copy of the Platform with Installations overridden.
func (p *Platform) WithInstallations(dirs []string) *Platform {
	newP := *p
	newP.Installations = append([]string(nil), dirs...)

	return &newP
}

// IsCommandAvailable checks if a command is available in PATH
func IsCommandAvailable(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
