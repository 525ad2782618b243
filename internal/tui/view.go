package tui

import (
	"fmt"
	"strings"

	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/AntoineGS/tidyseal/internal/shell"
	"github.com/charmbracelet/lipgloss"
)

// View renders the panel: both panes when unfolded, the leaflet's visible
// pane when folded.
func (m Model) View() string {
	var b strings.Builder

	folded := m.shell.Leaflet.Folded.Get()

	if folded {
		if m.shell.Leaflet.VisibleChild.Get() == shell.PaneApplications {
			b.WriteString(m.renderApplicationsPane(m.paneWidth(), true))
		} else {
			b.WriteString(m.renderPermissionsPane(m.paneWidth(), true))
		}
	} else {
		left := m.renderApplicationsPane(ApplicationsPaneWidth, m.focus == shell.PaneApplications)
		right := m.renderPermissionsPane(m.paneWidth()-ApplicationsPaneWidth-paneGap, m.focus == shell.PanePermissions)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", paneGap), right))
	}

	b.WriteString("\n")

	if m.errSource != nil {
		if err := m.errSource(); err != nil {
			b.WriteString(ErrorStyle.Render("Error: "+err.Error()) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString(MutedTextStyle.Render(m.status) + "\n")
	}

	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) paneWidth() int {
	if m.width <= 0 {
		return FoldWidth
	}

	return m.width
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}

	return max(m.height-chromeLines, 3)
}

func (m Model) renderHeader(bar *shell.HeaderBar, width int, prefix string) string {
	title := bar.Title.Get()
	if prefix != "" {
		title = prefix + "  " + title
	}

	controls := ""
	if bar.ShowWindowControls.Get() {
		controls = WindowControlStyle.Render(WindowControlMarker)
	}

	// pane border, pane padding and header padding
	inner := max(width-6, lipgloss.Width(title)+lipgloss.Width(controls)+1)
	gap := inner - lipgloss.Width(title) - lipgloss.Width(controls)

	return HeaderBarStyle.Render(title + strings.Repeat(" ", gap) + controls)
}

func (m Model) renderApplicationsPane(width int, active bool) string {
	var lines []string

	lines = append(lines, m.renderHeader(m.shell.ApplicationsBar, width, ""))

	if m.mode == ModeSearch {
		lines = append(lines, m.search.View())
	} else if q := m.shell.Search.Text.Get(); q != "" {
		lines = append(lines, MutedTextStyle.Render("/ "+q))
	}

	if m.shell.ApplicationsPage.VisiblePage.Get() == shell.PageEmpty {
		lines = append(lines, SubtitleStyle.Render(EmptyApplications))
		return m.frame(lines, width, active)
	}

	rows := m.shell.Applications.VisibleRows()
	if len(rows) == 0 {
		lines = append(lines, SubtitleStyle.Render("No matches"))
	}

	selected := m.shell.Selected()
	body := make([]string, len(rows))
	for i, row := range rows {
		marker := IndentSpaces
		if row == selected {
			marker = SelectedMarker
		}

		text := marker + row.Name
		if row.Name != row.ID {
			text += " " + MutedTextStyle.Render(row.ID)
		}

		if active && i == m.appCursor {
			body[i] = SelectedListItemStyle.Render(CursorMarker + text)
		} else {
			body[i] = IndentSpaces + text
		}
	}

	lines = append(lines, scrollWindow(body, m.appCursor, m.bodyHeight())...)

	return m.frame(lines, width, active)
}

func (m Model) renderPermissionsPane(width int, active bool) string {
	var lines []string

	prefix := ""
	if m.shell.BackButton.Visible.Get() {
		prefix = BackMarker
	}
	lines = append(lines, m.renderHeader(m.shell.PermissionsBar, width, prefix))

	if m.shell.PermissionsPage.VisiblePage.Get() == shell.PageEmpty {
		lines = append(lines, SubtitleStyle.Render(EmptyPermissions))
		return m.frame(lines, width, active)
	}

	lines = append(lines, m.renderInfo())

	var body []string
	cursorLine := 0
	permIndex := 0
	compact := m.shell.Info.Compact.Get()

	for _, item := range m.shell.Permissions.Items() {
		if item.IsGroup() {
			header := GroupStyle.Render(item.Group.Group)
			if !compact && item.Group.Description != "" {
				header += " " + SubtitleStyle.Render(item.Group.Description)
			}
			body = append(body, header)
			continue
		}

		isCursor := active && permIndex == m.permCursor
		if isCursor {
			cursorLine = len(body)
		}
		body = append(body, m.renderPermission(item.Permission, isCursor))
		permIndex++
	}

	lines = append(lines, scrollWindow(body, cursorLine, m.bodyHeight()-2)...)

	if m.mode == ModeEditText {
		lines = append(lines, "", m.editor.View())
	}

	return m.frame(lines, width, active)
}

func (m Model) renderInfo() string {
	name := m.shell.Info.Name.Get()
	reset := InactiveButtonStyle.Render(ResetLabel)
	if m.shell.ResetButton.Sensitive.Get() {
		reset = ButtonStyle.Render(ResetLabel)
	}

	if m.shell.Info.Compact.Get() {
		return SelectedListItemStyle.Render(name) + "  " + reset
	}

	return SelectedListItemStyle.Render(name) + " " + MutedTextStyle.Render(m.shell.Info.AppID.Get()) + "  " + reset
}

func (m Model) renderPermission(row *shell.PermissionRow, cursor bool) string {
	value := row.Content.Get()

	var text string
	if row.Kind == config.KindToggle {
		box := UncheckedStyle.Render(CheckboxUnchecked)
		if value.Bool {
			box = CheckedStyle.Render(CheckboxChecked)
		}
		text = fmt.Sprintf("%s %s", box, row.Description)
	} else {
		shown := value.Text
		if shown == "" {
			shown = MutedTextStyle.Render("(none)")
		}
		text = fmt.Sprintf("%s: %s", row.Description, shown)
	}

	if !m.shell.Info.Compact.Get() {
		text += " " + MutedTextStyle.Render(row.Property)
	}

	if !row.Sensitive.Get() {
		text = DisabledStyle.Render(text) + " " + MutedTextStyle.Render("("+UnsupportedLabel+")")
	}

	if cursor {
		return SelectedListItemStyle.Render(CursorMarker) + text
	}

	return IndentSpaces + text
}

func (m Model) frame(lines []string, width int, active bool) string {
	style := PaneStyle
	if active {
		style = ActivePaneStyle
	}

	content := make([]string, len(lines))
	for i, l := range lines {
		content[i] = padRight(l, width-4)
	}

	return style.Width(width - 2).Render(strings.Join(content, "\n"))
}

func (m Model) renderHelp() string {
	switch m.mode {
	case ModeSearch:
		return RenderBindings(SearchKeys.Confirm, SearchKeys.Cancel)
	case ModeEditText:
		return RenderBindings(TextEditKeys.Confirm, TextEditKeys.Cancel)
	}

	bindings := []PanelKeyMapEntry{
		{PanelKeys.Up, true},
		{PanelKeys.Down, true},
		{PanelKeys.Search, true},
		{PanelKeys.Open, m.activePane() == shell.PaneApplications},
		{PanelKeys.Back, m.shell.BackButton.Visible.Get()},
		{PanelKeys.SwitchPane, !m.shell.Leaflet.Folded.Get()},
		{PanelKeys.Toggle, m.activePane() == shell.PanePermissions},
		{PanelKeys.Edit, m.activePane() == shell.PanePermissions},
		{PanelKeys.Reset, m.shell.ResetButton.Sensitive.Get()},
		{PanelKeys.CycleLayout, true},
		{SharedKeys.Quit, true},
	}

	var pairs []string
	for _, e := range bindings {
		if e.Show {
			pairs = append(pairs, e.Binding.Help().Key, e.Binding.Help().Desc)
		}
	}

	return RenderHelp(pairs...)
}

// scrollWindow returns the lines of body visible around cursor, keeping up to
// ScrollOffsetMargin lines below it. height <= 0 shows everything.
func scrollWindow(body []string, cursor, height int) []string {
	if height <= 0 || len(body) <= height {
		return body
	}

	margin := min(ScrollOffsetMargin, (height-1)/2)
	start := cursor + margin - height + 1
	start = min(start, len(body)-height)
	start = max(start, 0)

	return body[start : start+height]
}
