package tui

import (
	"fmt"

	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/AntoineGS/tidyseal/internal/platform"
	"github.com/AntoineGS/tidyseal/internal/shell"
	"github.com/AntoineGS/tidyseal/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the input mode of the panel.
type Mode int

// Input modes.
const (
	// ModeBrowse moves through applications and permissions
	ModeBrowse Mode = iota
	// ModeSearch types into the application search entry
	ModeSearch
	// ModeEditText edits a text permission
	ModeEditText
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "Browse"
	case ModeSearch:
		return "Search"
	case ModeEditText:
		return "Edit"
	}

	return "Unknown"
}

// layoutChangedMsg carries a decoration layout reported by the desktop.
type layoutChangedMsg string

// layoutMonitorClosedMsg is sent once the layout monitor stops.
type layoutMonitorClosedMsg struct{}

// Model renders a shell controller and feeds it key and resize events.
type Model struct {
	shell    *shell.Controller
	settings *platform.Settings
	monitor  <-chan string

	search  textinput.Model
	editor  components.TextField
	editing *shell.PermissionRow

	status    string
	errSource func() error

	width      int
	height     int
	appCursor  int
	permCursor int
	focus      shell.Pane
	mode       Mode
}

// NewModel returns a model over a started controller. monitor may be nil.
func NewModel(ctrl *shell.Controller, settings *platform.Settings, monitor <-chan string) Model {
	ti := textinput.New()
	ti.Placeholder = PlaceholderSearch
	ti.CharLimit = 128
	ti.Width = ApplicationsPaneWidth - 6
	ti.Prompt = "/ "

	m := Model{
		shell:    ctrl,
		settings: settings,
		monitor:  monitor,
		search:   ti,
		focus:    shell.PaneApplications,
	}

	if sel := ctrl.Applications.SelectedIndex(); sel >= 0 {
		m.appCursor = sel
	}

	return m
}

// Init starts listening for decoration layout changes.
func (m Model) Init() tea.Cmd {
	return waitForLayout(m.monitor)
}

func waitForLayout(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		layout, ok := <-ch
		if !ok {
			return layoutMonitorClosedMsg{}
		}
		return layoutChangedMsg(layout)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shell.Leaflet.SetFolded(msg.Width < FoldWidth)
		return m, nil

	case layoutChangedMsg:
		if m.settings != nil {
			m.settings.SetDecorationLayout(string(msg))
		}
		return m, waitForLayout(m.monitor)

	case layoutMonitorClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, SharedKeys.ForceQuit) {
			return m.quit()
		}

		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeEditText:
			return m.updateEdit(msg)
		}

		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.shell.Window.Destroy()
	return m, tea.Quit
}

// activePane is the pane receiving keys. When folded only the visible pane
// can have focus.
func (m Model) activePane() shell.Pane {
	if m.shell.Leaflet.Folded.Get() {
		return m.shell.Leaflet.VisibleChild.Get()
	}

	return m.focus
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, SharedKeys.Quit) {
		return m.quit()
	}

	if !m.shell.Ready() {
		return m, nil
	}

	switch {
	case key.Matches(msg, PanelKeys.Search):
		m.mode = ModeSearch
		m.focus = shell.PaneApplications
		if m.shell.Leaflet.Folded.Get() {
			m.goBack()
		}
		m.search.SetValue(m.shell.Search.Text.Get())
		return m, m.search.Focus()

	case key.Matches(msg, PanelKeys.Reset):
		if !m.shell.ResetButton.Click() {
			m.status = "Nothing to reset"
		}
		return m, nil

	case key.Matches(msg, PanelKeys.CycleLayout):
		if m.settings != nil {
			m.settings.SetDecorationLayout(platform.NextLayout(m.settings.DecorationLayout()))
			m.status = "Decoration layout: " + m.settings.DecorationLayout()
		}
		return m, nil

	case key.Matches(msg, PanelKeys.SwitchPane):
		if !m.shell.Leaflet.Folded.Get() {
			if m.focus == shell.PaneApplications {
				m.focus = shell.PanePermissions
			} else {
				m.focus = shell.PaneApplications
			}
		}
		return m, nil
	}

	if m.activePane() == shell.PaneApplications {
		return m.updateApplications(msg)
	}

	return m.updatePermissions(msg)
}

func (m Model) updateApplications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.shell.Applications.VisibleRows()

	switch {
	case key.Matches(msg, PanelKeys.Up):
		if m.appCursor > 0 {
			m.appCursor--
		}
	case key.Matches(msg, PanelKeys.Down):
		if m.appCursor < len(rows)-1 {
			m.appCursor++
		}
	case key.Matches(msg, PanelKeys.Open):
		if m.appCursor < len(rows) {
			m.shell.Applications.Select(rows[m.appCursor].Index)
			m.focus = shell.PanePermissions
			m.permCursor = 0
		}
	}

	return m, nil
}

func (m Model) updatePermissions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.shell.Permissions.Permissions()

	switch {
	case key.Matches(msg, PanelKeys.Up):
		if m.permCursor > 0 {
			m.permCursor--
		}
	case key.Matches(msg, PanelKeys.Down):
		if m.permCursor < len(rows)-1 {
			m.permCursor++
		}
	case key.Matches(msg, PanelKeys.Back):
		m.goBack()
	case key.Matches(msg, PanelKeys.Toggle):
		if row := m.currentPermission(); row != nil && !row.Toggle() {
			m.status = m.refusal(row)
		}
	case key.Matches(msg, PanelKeys.Edit), key.Matches(msg, PanelKeys.Open):
		row := m.currentPermission()
		if row == nil {
			break
		}
		if row.Kind != config.KindText || !row.Sensitive.Get() {
			m.status = m.refusal(row)
			break
		}
		m.editing = row
		m.editor = components.NewTextField(row.Description, PlaceholderText, row.Content.Get().Text)
		m.editor.Focus()
		m.editor.EnterEditMode()
		m.mode = ModeEditText
	}

	return m, nil
}

func (m *Model) goBack() {
	m.focus = shell.PaneApplications
	if !m.shell.Leaflet.Folded.Get() || !m.shell.BackButton.Visible.Get() {
		return
	}

	m.shell.BackButton.Active.Set(true)
	m.shell.BackButton.Click()
}

func (m Model) refusal(row *shell.PermissionRow) string {
	if !row.Sensitive.Get() {
		return fmt.Sprintf("%s is not supported by this Flatpak version", row.Property)
	}
	if row.Kind == config.KindText {
		return "Press e to edit " + row.Property
	}

	return "Press space to toggle " + row.Property
}

func (m Model) currentPermission() *shell.PermissionRow {
	rows := m.shell.Permissions.Permissions()
	if m.permCursor < 0 || m.permCursor >= len(rows) {
		return nil
	}

	return rows[m.permCursor]
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SearchKeys.Cancel):
		m.shell.Search.Stop()
		m.search.SetValue("")
		m.search.Blur()
		m.mode = ModeBrowse
		m.clampAppCursor()
		return m, nil

	case key.Matches(msg, SearchKeys.Confirm):
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.shell.Search.SetText(m.search.Value())
	m.clampAppCursor()

	return m, cmd
}

func (m *Model) clampAppCursor() {
	n := len(m.shell.Applications.VisibleRows())
	if m.appCursor >= n {
		m.appCursor = n - 1
	}
	if m.appCursor < 0 {
		m.appCursor = 0
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, TextEditKeys.Cancel):
		m.editor.Revert()
		m.stopEditing()
		return m, nil

	case key.Matches(msg, TextEditKeys.Confirm):
		m.editor.ExitEditMode()
		if m.editing != nil && m.editor.Changed() {
			m.editing.SetText(m.editor.Value())
		}
		m.stopEditing()
		return m, nil
	}

	return m, m.editor.Update(msg)
}

func (m *Model) stopEditing() {
	m.editor.Blur()
	m.editing = nil
	m.mode = ModeBrowse
}

// WithErrorSource makes the view show the error fn reports, if any.
func (m Model) WithErrorSource(fn func() error) Model {
	m.errSource = fn
	return m
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}
