// Package components holds reusable Bubble Tea widgets.
package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle        = lipgloss.NewStyle().Bold(true)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
)

// TextField is a text input with a label and two-phase editing: focus first,
// then edit. The value it was created with can be restored with Revert.
type TextField struct {
	Label       string
	Placeholder string
	original    string
	input       textinput.Model
	focused     bool
	editing     bool
}

// NewTextField creates a new TextField
func NewTextField(label, placeholder, value string) TextField {
	return NewTextFieldWithLimits(label, placeholder, value, 1024, 48)
}

// NewTextFieldWithLimits creates a new TextField with custom char limit and width
func NewTextFieldWithLimits(label, placeholder, value string, charLimit, width int) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = charLimit
	ti.Width = width

	return TextField{
		Label:       label,
		Placeholder: placeholder,
		original:    value,
		input:       ti,
	}
}

// Focus sets the field as focused (highlighted but not editing)
func (t *TextField) Focus() {
	t.focused = true
	t.editing = false
}

// Blur removes focus from the field
func (t *TextField) Blur() {
	t.focused = false
	t.editing = false
	t.input.Blur()
}

// IsFocused returns whether the field is focused
func (t *TextField) IsFocused() bool {
	return t.focused
}

// IsEditing returns whether the field is in edit mode
func (t *TextField) IsEditing() bool {
	return t.editing
}

// EnterEditMode starts editing the field
func (t *TextField) EnterEditMode() {
	t.editing = true
	t.input.Focus()
	t.input.SetCursor(len(t.input.Value()))
}

// ExitEditMode stops editing and keeps the value
func (t *TextField) ExitEditMode() {
	t.editing = false
	t.input.Blur()
}

// Revert restores the initial value and stops editing.
func (t *TextField) Revert() {
	t.input.SetValue(t.original)
	t.ExitEditMode()
}

// Changed reports whether the value differs from the initial one.
func (t *TextField) Changed() bool {
	return t.input.Value() != t.original
}

// Value returns the current field value
func (t *TextField) Value() string {
	return t.input.Value()
}

// SetValue sets the field value
func (t *TextField) SetValue(value string) {
	t.input.SetValue(value)
}

// Update handles bubble tea messages
func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if !t.editing {
		return nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

// View renders the label above the input.
func (t *TextField) View() string {
	label := labelStyle.Render(t.Label)
	if t.focused {
		label = focusedLabelStyle.Render(t.Label)
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, t.input.View())
}
