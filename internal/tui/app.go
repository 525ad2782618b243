package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/AntoineGS/tidyseal/internal/platform"
	"github.com/AntoineGS/tidyseal/internal/shell"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI over a started controller. The window is
// destroyed when the program ends, however it ends.
func Run(ctx context.Context, ctrl *shell.Controller, settings *platform.Settings, errSource func() error) error {
	defer ctrl.Window.Destroy()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctrl, settings, platform.Monitor(ctx)).WithErrorSource(errSource)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// IsTerminal checks if stdout is a terminal
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
