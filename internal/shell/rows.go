package shell

import (
	"github.com/AntoineGS/tidyseal/internal/binding"
	"github.com/AntoineGS/tidyseal/internal/config"
)

// ApplicationRow is one entry of the applications list.
type ApplicationRow struct {
	Index     int
	ID        string
	Name      string
	ThemePath string
}

func newApplicationRow(index int, app config.Application) *ApplicationRow {
	return &ApplicationRow{
		Index:     index,
		ID:        app.ID,
		Name:      app.DisplayName(),
		ThemePath: app.ThemePath,
	}
}

// PermissionRow displays and edits one permission value. Content is bound to
// the model; Sensitive is false for permissions the host cannot honor.
type PermissionRow struct {
	Group       string
	Description string
	Property    string
	Kind        config.Kind
	Sensitive   *binding.Cell[bool]
	Content     *binding.Cell[config.Value]
}

func newPermissionRow(p config.Permission) *PermissionRow {
	return &PermissionRow{
		Group:       p.Group,
		Description: p.Description,
		Property:    p.Property,
		Kind:        p.Kind,
		Sensitive:   binding.NewCell(p.Supported),
		Content:     binding.NewCell(p.Value),
	}
}

// Toggle flips a toggle row. Insensitive rows and text rows are left alone.
func (r *PermissionRow) Toggle() bool {
	if !r.Sensitive.Get() || r.Kind != config.KindToggle {
		return false
	}

	v := r.Content.Get()
	r.Content.Set(config.ToggleValue(!v.Bool))

	return true
}

// SetText replaces the value of a text row. Insensitive rows and toggle rows
// are left alone.
func (r *PermissionRow) SetText(s string) bool {
	if !r.Sensitive.Get() || r.Kind != config.KindText {
		return false
	}

	r.Content.Set(config.TextValue(s))

	return true
}

// GroupRow heads a contiguous run of permissions sharing a group.
type GroupRow struct {
	Group       string
	Description string
}

// Item is one entry of the permissions box: either a group header or a
// permission row.
type Item struct {
	Group      *GroupRow
	Permission *PermissionRow
}

// IsGroup reports whether the item is a group header.
func (i Item) IsGroup() bool {
	return i.Group != nil
}
