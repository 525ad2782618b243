package platform

import (
	"bufio"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/AntoineGS/tidyseal/internal/binding"
)

// DefaultDecorationLayout is used when nothing else reports a layout.
const DefaultDecorationLayout = "appmenu:close"

const (
	wmSchema       = "org.gnome.desktop.wm.preferences"
	buttonLayout   = "button-layout"
	monitorBufSize = 4
)

// PresetLayouts are the layouts offered when cycling the setting by hand.
var PresetLayouts = []string{
	"appmenu:close",
	"close:appmenu",
	"appmenu:minimize,maximize,close",
	"close,minimize,maximize:appmenu",
}

// Settings holds desktop settings the shell reacts to. It is not safe for
// concurrent use; feed changes from a single event loop.
type Settings struct {
	logger  *slog.Logger
	layout  string
	changed binding.Signal[string]
}

// NewSettings returns settings seeded with layout. An empty layout is
// replaced by the desktop's current value, or DefaultDecorationLayout.
func NewSettings(layout string, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(layout) == "" {
		layout = readDecorationLayout()
	}
	if layout == "" {
		layout = DefaultDecorationLayout
	}

	return &Settings{logger: logger, layout: layout}
}

// DecorationLayout returns the window button layout, e.g. "close:appmenu".
func (s *Settings) DecorationLayout() string {
	return s.layout
}

// SetDecorationLayout stores layout and notifies listeners when it changed.
func (s *Settings) SetDecorationLayout(layout string) {
	if layout == s.layout {
		return
	}

	s.logger.Debug("decoration layout changed",
		slog.String("from", s.layout),
		slog.String("to", layout))

	s.layout = layout
	s.changed.Emit(layout)
}

// OnDecorationLayoutChanged registers fn for layout changes.
func (s *Settings) OnDecorationLayoutChanged(fn func(string)) binding.Disposer {
	return s.changed.Connect(fn)
}

// Listeners returns the number of registered layout listeners.
func (s *Settings) Listeners() int {
	return s.changed.Len()
}

// NextLayout returns the preset following current, wrapping around.
func NextLayout(current string) string {
	for i, l := range PresetLayouts {
		if l == current {
			return PresetLayouts[(i+1)%len(PresetLayouts)]
		}
	}

	return PresetLayouts[0]
}

func readDecorationLayout() string {
	if !IsCommandAvailable("gsettings") {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "gsettings", "get", wmSchema, buttonLayout).Output()
	if err != nil {
		slog.Debug("unable to read decoration layout",
			slog.String("error", err.Error()),
			slog.String("fallback", DefaultDecorationLayout))
		return ""
	}

	return parseGSettingsValue(string(output))
}

// parseGSettingsValue turns "'close:appmenu'\n" into "close:appmenu".
func parseGSettingsValue(output string) string {
	v := strings.TrimSpace(output)
	return strings.Trim(v, `'"`)
}

// parseMonitorLine parses a `gsettings monitor` line such as
// "button-layout: 'close:appmenu'".
func parseMonitorLine(line string) (string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok || strings.TrimSpace(key) != buttonLayout {
		return "", false
	}

	return parseGSettingsValue(value), true
}

// Monitor streams decoration layout changes reported by the desktop until ctx
// is canceled. The channel is closed when monitoring stops; it is closed
// immediately when gsettings is unavailable.
func Monitor(ctx context.Context) <-chan string {
	out := make(chan string, monitorBufSize)

	if !IsCommandAvailable("gsettings") {
		close(out)
		return out
	}

	cmd := exec.CommandContext(ctx, "gsettings", "monitor", wmSchema, buttonLayout)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		close(out)
		return out
	}

	if err := cmd.Start(); err != nil {
		slog.Debug("unable to monitor decoration layout", slog.String("error", err.Error()))
		close(out)
		return out
	}

	go func() {
		defer close(out)
		defer func() { _ = cmd.Wait() }() //nolint:errcheck // process ends with ctx

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			layout, ok := parseMonitorLine(scanner.Text())
			if !ok {
				continue
			}

			select {
			case out <- layout:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
