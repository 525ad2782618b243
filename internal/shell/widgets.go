package shell

import (
	"github.com/AntoineGS/tidyseal/internal/binding"
)

// Pane names the two children of the leaflet.
type Pane string

// Leaflet panes.
const (
	PaneApplications Pane = "applications"
	PanePermissions  Pane = "permissions"
)

// Page names the children of a content stack.
type Page string

// Stack pages.
const (
	PageEmpty   Page = "empty"
	PageContent Page = "content"
)

// HeaderBar is the title bar above one pane.
type HeaderBar struct {
	Title              *binding.Cell[string]
	ShowWindowControls *binding.Cell[bool]
}

func newHeaderBar(title string) *HeaderBar {
	return &HeaderBar{
		Title:              binding.NewCell(title),
		ShowWindowControls: binding.NewCell(false),
	}
}

// Button is a clickable control. Active is the pressed state of toggle-like
// buttons.
type Button struct {
	Sensitive *binding.Cell[bool]
	Visible   *binding.Cell[bool]
	Active    *binding.Cell[bool]
	Clicked   binding.Signal[struct{}]
}

func newButton() *Button {
	return &Button{
		Sensitive: binding.NewCell(true),
		Visible:   binding.NewCell(true),
		Active:    binding.NewCell(false),
	}
}

// Click emits Clicked unless the button is insensitive. It reports whether
// the click was delivered.
func (b *Button) Click() bool {
	if !b.Sensitive.Get() {
		return false
	}

	b.Clicked.Emit(struct{}{})

	return true
}

// SearchEntry holds the application search text.
type SearchEntry struct {
	Text       *binding.Cell[string]
	Changed    binding.Signal[string]
	StopSearch binding.Signal[struct{}]
}

func newSearchEntry() *SearchEntry {
	return &SearchEntry{Text: binding.NewCell("")}
}

// SetText replaces the text and emits Changed when it differs.
func (e *SearchEntry) SetText(s string) {
	if e.Text.Get() == s {
		return
	}

	e.Text.Set(s)
	e.Changed.Emit(s)
}

// Stop emits StopSearch, the entry's cancel request.
func (e *SearchEntry) Stop() {
	e.StopSearch.Emit(struct{}{})
}

// ApplicationList is a filterable, single-selection list of application rows.
type ApplicationList struct {
	rows        []*ApplicationRow
	visible     []bool
	selected    int
	filter      func(*ApplicationRow) bool
	RowSelected binding.Signal[*ApplicationRow]
}

func newApplicationList() *ApplicationList {
	return &ApplicationList{selected: -1}
}

// Append adds a row and applies the current filter to it.
func (l *ApplicationList) Append(row *ApplicationRow) {
	l.rows = append(l.rows, row)
	l.visible = append(l.visible, l.filter == nil || l.filter(row))
}

// Rows returns every row in insertion order.
func (l *ApplicationList) Rows() []*ApplicationRow {
	return l.rows
}

// Len returns the number of rows.
func (l *ApplicationList) Len() int {
	return len(l.rows)
}

// SetFilterFunc installs fn and re-applies it.
func (l *ApplicationList) SetFilterFunc(fn func(*ApplicationRow) bool) {
	l.filter = fn
	l.InvalidateFilter()
}

// InvalidateFilter re-evaluates the filter for every row. Row order never
// changes.
func (l *ApplicationList) InvalidateFilter() {
	for i, row := range l.rows {
		l.visible[i] = l.filter == nil || l.filter(row)
	}
}

// Visible reports whether row i passes the filter.
func (l *ApplicationList) Visible(i int) bool {
	if i < 0 || i >= len(l.visible) {
		return false
	}

	return l.visible[i]
}

// VisibleRows returns the rows passing the filter, in order.
func (l *ApplicationList) VisibleRows() []*ApplicationRow {
	out := make([]*ApplicationRow, 0, len(l.rows))
	for i, row := range l.rows {
		if l.visible[i] {
			out = append(out, row)
		}
	}

	return out
}

// Select selects row i and emits RowSelected. Out of range indexes are
// ignored.
func (l *ApplicationList) Select(i int) {
	if i < 0 || i >= len(l.rows) {
		return
	}

	l.selected = i
	l.RowSelected.Emit(l.rows[i])
}

// Selected returns the selected row, or nil.
func (l *ApplicationList) Selected() *ApplicationRow {
	if l.selected < 0 {
		return nil
	}

	return l.rows[l.selected]
}

// SelectedIndex returns the selected index, or -1.
func (l *ApplicationList) SelectedIndex() int {
	return l.selected
}

// PermissionsBox holds group headers and permission rows in display order.
type PermissionsBox struct {
	items []Item
}

// AppendGroup adds a group header.
func (b *PermissionsBox) AppendGroup(row *GroupRow) {
	b.items = append(b.items, Item{Group: row})
}

// AppendPermission adds a permission row.
func (b *PermissionsBox) AppendPermission(row *PermissionRow) {
	b.items = append(b.items, Item{Permission: row})
}

// Items returns the box content.
func (b *PermissionsBox) Items() []Item {
	return b.items
}

// Permissions returns only the permission rows.
func (b *PermissionsBox) Permissions() []*PermissionRow {
	var rows []*PermissionRow
	for _, it := range b.items {
		if it.Permission != nil {
			rows = append(rows, it.Permission)
		}
	}

	return rows
}

// AppInfo summarizes the selected application above its permissions.
type AppInfo struct {
	AppID   *binding.Cell[string]
	Name    *binding.Cell[string]
	Compact *binding.Cell[bool]
}

func newAppInfo() *AppInfo {
	return &AppInfo{
		AppID:   binding.NewCell(""),
		Name:    binding.NewCell(""),
		Compact: binding.NewCell(false),
	}
}

// Leaflet is the two-pane container. When folded only VisibleChild is shown.
type Leaflet struct {
	Folded       *binding.Cell[bool]
	VisibleChild *binding.Cell[Pane]
}

func newLeaflet() *Leaflet {
	return &Leaflet{
		Folded:       binding.NewCell(false),
		VisibleChild: binding.NewCell(PaneApplications),
	}
}

// SetFolded updates the fold state, notifying only on change.
func (l *Leaflet) SetFolded(folded bool) {
	if l.Folded.Get() == folded {
		return
	}

	l.Folded.Set(folded)
}

// Stack shows one of its pages.
type Stack struct {
	VisiblePage *binding.Cell[Page]
}

func newStack() *Stack {
	return &Stack{VisiblePage: binding.NewCell(PageEmpty)}
}

// Window is the toplevel. Destroyed fires once.
type Window struct {
	Title     *binding.Cell[string]
	Destroyed binding.Signal[struct{}]
	destroyed bool
}

func newWindow(title string) *Window {
	return &Window{Title: binding.NewCell(title)}
}

// Destroy emits Destroyed the first time it is called.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}

	w.destroyed = true
	w.Destroyed.Emit(struct{}{})
}

// IsDestroyed reports whether Destroy was called.
func (w *Window) IsDestroyed() bool {
	return w.destroyed
}
