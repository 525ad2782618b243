package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/sebdah/goldie/v2"
)

func sampleApps() []config.Application {
	return []config.Application{
		{ID: "org.app.A", Name: "App A"},
		{ID: "org.app.B"},
		{ID: "com.example.Editor", Name: "Editor"},
	}
}

func samplePermissions() []config.Permission {
	return []config.Permission{
		{Group: "shared", GroupDescription: "Shared subsystems", Property: "shared.network", Kind: config.KindToggle, Value: config.ToggleValue(true), Supported: true},
		{Group: "shared", GroupDescription: "Shared subsystems", Property: "shared.ipc", Kind: config.KindToggle, Value: config.ToggleValue(false), Supported: true},
		{Group: "sockets", Property: "sockets.x11", Kind: config.KindToggle, Value: config.ToggleValue(false)},
		{Group: "filesystems", Property: "filesystems.custom", Kind: config.KindText, Value: config.TextValue(""), Supported: true},
	}
}

func sampleDefaults() map[string]config.Value {
	return map[string]config.Value{
		"shared.network":     config.ToggleValue(false),
		"shared.ipc":         config.ToggleValue(false),
		"sockets.x11":        config.ToggleValue(false),
		"filesystems.custom": config.TextValue(""),
	}
}

func TestWriteList(t *testing.T) {
	tests := []struct {
		name  string
		apps  []config.Application
		query string
	}{
		{"list_all", sampleApps(), ""},
		{"list_search", sampleApps(), "APP"},
		{"list_suggest", sampleApps(), "edtr"},
		{"list_empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeList(&buf, tt.apps, tt.query)

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestWriteShow(t *testing.T) {
	var buf bytes.Buffer
	writeShow(&buf, "App A (org.app.A)", samplePermissions(), sampleDefaults())

	g := goldie.New(t)
	g.Assert(t, "show", buf.Bytes())
}

func TestGenerateDiff(t *testing.T) {
	g := goldie.New(t)

	g.Assert(t, "diff_override", []byte(generateDiff("org.app.A", samplePermissions(), sampleDefaults())))

	unchanged := samplePermissions()
	unchanged[0].Value = config.ToggleValue(false)
	g.Assert(t, "diff_none", []byte(generateDiff("org.app.A", unchanged, sampleDefaults())))
}

func TestGenerateDiffMultipleChanges(t *testing.T) {
	perms := samplePermissions()
	perms[3].Value = config.TextValue("~/Music")

	out := generateDiff("org.app.A", perms, sampleDefaults())

	for _, want := range []string{"- shared.network=false", "+ shared.network=true", "- filesystems.custom=", "+ filesystems.custom=~/Music"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "shared.ipc") {
		t.Errorf("diff shows unchanged lines:\n%s", out)
	}
}

func TestSuggest(t *testing.T) {
	ids := []string{"org.gnome.Maps", "org.gnome.Weather", "com.valvesoftware.Steam", "org.mozilla.firefox", "org.gnome.Music"}

	got := suggest("gnmaps", ids)
	if len(got) == 0 || got[0] != "org.gnome.Maps" {
		t.Errorf("suggest() = %v, want org.gnome.Maps first", got)
	}

	if got := suggest("gnome", ids); len(got) != maxSuggestions {
		t.Errorf("suggest() returned %d results, want %d", len(got), maxSuggestions)
	}

	if got := suggest("zzz", ids); len(got) != 0 {
		t.Errorf("suggest() = %v, want none", got)
	}
}

func TestRunInit(t *testing.T) {
	tests := []struct {
		name        string
		setupPath   func(t *testing.T) string
		wantErr     bool
		errContains string
		outContains string
	}{
		{
			name: "valid directory",
			setupPath: func(t *testing.T) string {
				return t.TempDir()
			},
			outContains: "built-in permission catalog",
		},
		{
			name: "directory with catalog",
			setupPath: func(t *testing.T) string {
				dir := t.TempDir()
				if err := os.WriteFile(filepath.Join(dir, config.RepoConfigFile), []byte("version: 1\n"), 0600); err != nil {
					t.Fatal(err)
				}
				return dir
			},
			outContains: "Configurations directory:",
		},
		{
			name: "non-existent directory",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "non-existent")
			},
			wantErr:     true,
			errContains: "directory does not exist",
		},
		{
			name: "file instead of directory",
			setupPath: func(t *testing.T) string {
				filePath := filepath.Join(t.TempDir(), "file.txt")
				if err := os.WriteFile(filePath, []byte("test"), 0600); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return filePath
			},
			wantErr:     true,
			errContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())

			path := tt.setupPath(t)

			var out bytes.Buffer
			err := runInit(&out, path)

			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("runInit() error = %v, want containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("runInit() error = %v", err)
			}

			if !strings.Contains(out.String(), tt.outContains) {
				t.Errorf("output %q does not contain %q", out.String(), tt.outContains)
			}

			appCfg, err := config.LoadAppConfig()
			if err != nil {
				t.Fatalf("LoadAppConfig() error = %v", err)
			}
			if appCfg.ConfigDir != path {
				t.Errorf("ConfigDir = %q, want %q", appCfg.ConfigDir, path)
			}
		})
	}
}

const catalogYAML = `version: 1
applications:
  - id: org.app.A
    name: App A
  - id: org.app.B
permissions:
  - group: shared
    group_description: Shared subsystems
    description: Network
    property: shared.network
    kind: toggle
    default: true
  - group: sockets
    description: X11 windowing system
    property: sockets.x11
    kind: toggle
  - group: filesystems
    description: Other files
    property: filesystems.custom
    kind: text
  - group: devices
    description: GPU acceleration
    property: devices.dri
    kind: toggle
    requires: "1.4.0"
`

type cli struct {
	t    *testing.T
	dir  string
	db   string
	args []string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FLATPAK_USER_DIR", filepath.Join(home, "flatpak-user"))
	t.Setenv("FLATPAK_SYSTEM_DIR", filepath.Join(home, "flatpak-system"))

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.RepoConfigFile), []byte(catalogYAML), 0600); err != nil {
		t.Fatal(err)
	}

	return &cli{t: t, dir: dir, db: filepath.Join(t.TempDir(), "overrides.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--dir", c.dir, "--db", c.db}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("list", "--search", "app.b")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "org.app.B") || strings.Contains(out, "org.app.A") {
		t.Errorf("list output:\n%s", out)
	}

	out, err = c.run("set", "org.app.A", "sockets.x11", "true")
	if err != nil {
		t.Fatalf("set error = %v", err)
	}
	if out != "Set sockets.x11=true for org.app.A\n" {
		t.Errorf("set output = %q", out)
	}

	out, err = c.run("show", "org.app.A")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.HasPrefix(out, "App A (org.app.A)\n") {
		t.Errorf("show title:\n%s", out)
	}
	if !strings.Contains(out, "* sockets.x11") {
		t.Errorf("show does not mark the override:\n%s", out)
	}
	if !strings.Contains(out, "  shared.network") {
		t.Errorf("show marks a default value:\n%s", out)
	}

	out, err = c.run("diff", "org.app.A")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if !strings.Contains(out, "+ sockets.x11=true") {
		t.Errorf("diff output:\n%s", out)
	}

	// B is untouched.
	out, err = c.run("diff", "org.app.B")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if out != "org.app.B uses default permissions.\n" {
		t.Errorf("diff B output = %q", out)
	}

	out, err = c.run("reset", "org.app.A")
	if err != nil {
		t.Fatalf("reset error = %v", err)
	}
	if out != "Reset overrides of org.app.A\n" {
		t.Errorf("reset output = %q", out)
	}

	out, err = c.run("reset", "org.app.A")
	if err != nil {
		t.Fatalf("second reset error = %v", err)
	}
	if out != "org.app.A has no overrides\n" {
		t.Errorf("second reset output = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	c := newCLI(t)

	if _, err := c.run("show", "org.app.Z"); !errors.Is(err, ErrUnknownApplication) {
		t.Errorf("show unknown app error = %v", err)
	}

	_, err := c.run("show", "orgappa")
	if !errors.Is(err, ErrUnknownApplication) || !strings.Contains(err.Error(), `did you mean "org.app.A"`) {
		t.Errorf("show typo error = %v", err)
	}

	if _, err := c.run("set", "org.app.A", "sockets.nope", "true"); err == nil {
		t.Error("set accepted an unknown property")
	}

	if _, err := c.run("set", "org.app.A", "sockets.x11", "maybe"); !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("set bad value error = %v", err)
	}

	if _, err := c.run("set", "org.app.A"); err == nil {
		t.Error("set accepted missing arguments")
	}
}

func TestFlatpakVersionOverride(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("--flatpak-version", "1.2.0", "show", "org.app.A")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "! devices.dri") {
		t.Errorf("devices.dri not marked unsupported on 1.2.0:\n%s", out)
	}

	out, err = c.run("--flatpak-version", "1.4.2", "show", "org.app.A")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if strings.Contains(out, "! devices.dri") {
		t.Errorf("devices.dri marked unsupported on 1.4.2:\n%s", out)
	}
}

func TestBuiltinCatalogWithoutConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FLATPAK_USER_DIR", filepath.Join(home, "none"))
	t.Setenv("FLATPAK_SYSTEM_DIR", filepath.Join(home, "none"))

	db := filepath.Join(t.TempDir(), "overrides.db")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", db, "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if out.String() != "No applications found\n" {
		t.Errorf("list output = %q", out.String())
	}
}
