// Package shell is the permission editor's controller. It owns the widget
// state the renderer draws, binds permission rows to the model, filters the
// application list, tracks overrides and drives the responsive layout.
// Everything runs on the caller's event loop; nothing here is safe for
// concurrent use.
package shell

import (
	"log/slog"

	"github.com/AntoineGS/tidyseal/internal/binding"
	"github.com/AntoineGS/tidyseal/internal/config"
)

// DefaultTitle is the window title before an application is selected.
const DefaultTitle = "tidyseal"

// ApplicationSource enumerates applications.
type ApplicationSource interface {
	All() []config.Application
}

// PermissionModel is the permission data source.
type PermissionModel interface {
	All() []config.Permission
	// Property returns the live value for key, or nil when key is unknown.
	Property(key string) binding.Property[config.Value]
	SetSelectedApplication(id string)
	Reset()
	Shutdown()
	OnChanged(fn func(overridden bool)) binding.Disposer
}

// Settings reports the desktop's window button layout.
type Settings interface {
	DecorationLayout() string
	OnDecorationLayoutChanged(fn func(string)) binding.Disposer
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Applications ApplicationSource
	Permissions  PermissionModel
	Settings     Settings
	Logger       *slog.Logger
}

// Controller is the composition root of the editor.
type Controller struct {
	Window           *Window
	ApplicationsBar  *HeaderBar
	PermissionsBar   *HeaderBar
	Search           *SearchEntry
	Applications     *ApplicationList
	Permissions      *PermissionsBox
	Info             *AppInfo
	ResetButton      *Button
	BackButton       *Button
	Leaflet          *Leaflet
	ApplicationsPage *Stack
	PermissionsPage  *Stack

	logger  *slog.Logger
	apps    ApplicationSource
	model   PermissionModel
	layout  *Layout
	tracker *Tracker
	binder  *binding.Binder[config.Value]
	scope   binding.Scope

	started   bool
	ready     bool
	destroyed bool
}

// New builds the widget tree. Call Start to load data and wire events.
func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		Window:           newWindow(DefaultTitle),
		ApplicationsBar:  newHeaderBar("Applications"),
		PermissionsBar:   newHeaderBar(""),
		Search:           newSearchEntry(),
		Applications:     newApplicationList(),
		Permissions:      &PermissionsBox{},
		Info:             newAppInfo(),
		ResetButton:      newButton(),
		BackButton:       newButton(),
		Leaflet:          newLeaflet(),
		ApplicationsPage: newStack(),
		PermissionsPage:  newStack(),
		logger:           logger,
		apps:             deps.Applications,
		model:            deps.Permissions,
		binder:           binding.NewBinder[config.Value](logger),
	}

	c.layout = NewLayout(deps.Settings, c.Leaflet, c.ApplicationsBar, c.PermissionsBar, c.BackButton, logger)
	c.tracker = NewTracker(deps.Permissions, c.ResetButton)

	return c
}

// Start loads the snapshots and wires the shell. When either snapshot is
// empty the shell stays on its empty pages with no rows and no bindings.
// Start runs once; later calls do nothing.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true

	c.layout.Setup()
	c.scope.Add(c.layout.Close)
	c.scope.Add(c.Window.Destroyed.Connect(func(struct{}) { c.destroy() }))

	applications := c.apps.All()
	permissions := c.model.All()

	if len(applications) == 0 || len(permissions) == 0 {
		c.logger.Info("nothing to show",
			slog.Int("applications", len(applications)),
			slog.Int("permissions", len(permissions)))
		return
	}

	for i, app := range applications {
		c.Applications.Append(newApplicationRow(i, app))
	}

	c.scope.Add(binding.Watch[bool](c.Leaflet.Folded, c.Info.Compact.Set))

	lastGroup := ""
	for _, p := range permissions {
		if p.Group != lastGroup {
			c.Permissions.AppendGroup(&GroupRow{Group: p.Group, Description: p.GroupDescription})
			lastGroup = p.Group
		}

		row := newPermissionRow(p)
		c.Permissions.AppendPermission(row)

		prop := c.model.Property(p.Property)
		if prop == nil {
			c.logger.Warn("permission has no model property", slog.String("property", p.Property))
			continue
		}
		c.binder.Bind(row.Content, p.Property, prop)
	}
	c.scope.Add(c.binder.Close)

	c.scope.Add(c.model.OnChanged(c.tracker.OnModelChanged))

	c.PermissionsPage.VisiblePage.Set(PageContent)
	c.ApplicationsPage.VisiblePage.Set(PageContent)

	c.scope.Add(c.Applications.RowSelected.Connect(c.update))
	c.Applications.SetFilterFunc(c.filter)

	c.scope.Add(c.Search.StopSearch.Connect(func(struct{}) { c.Search.SetText("") }))
	c.scope.Add(c.Search.Changed.Connect(func(string) { c.Applications.InvalidateFilter() }))

	c.ResetButton.Sensitive.Set(true)
	c.scope.Add(c.ResetButton.Clicked.Connect(func(struct{}) { c.tracker.Reset() }))

	c.scope.Add(c.BackButton.Clicked.Connect(func(struct{}) { c.layout.ShowApplications() }))
	c.scope.Add(c.Leaflet.Folded.Observe(func(bool) { c.layout.ShowPermissions() }))

	c.ready = true

	c.Applications.Select(0)
}

func (c *Controller) update(row *ApplicationRow) {
	if row == nil || c.destroyed {
		return
	}

	c.tracker.SelectionChanged()
	c.model.SetSelectedApplication(row.ID)
	c.PermissionsBar.Title.Set(row.Name)
	c.Window.Title.Set(row.Name)
	c.Info.AppID.Set(row.ID)
	c.Info.Name.Set(row.Name)
	c.layout.ShowPermissions()

	c.logger.Debug("application selected",
		slog.Int("index", row.Index),
		slog.String("app_id", row.ID))
}

func (c *Controller) filter(row *ApplicationRow) bool {
	return Matches(c.Search.Text.Get(), row.ID)
}

func (c *Controller) destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	c.model.Shutdown()
	c.scope.Close()

	c.logger.Debug("shell destroyed")
}

// Ready reports whether Start found data and wired the shell.
func (c *Controller) Ready() bool {
	return c.ready
}

// Destroyed reports whether the window was destroyed.
func (c *Controller) Destroyed() bool {
	return c.destroyed
}

// Layout returns the layout state machine.
func (c *Controller) Layout() *Layout {
	return c.layout
}

// Tracker returns the override tracker.
func (c *Controller) Tracker() *Tracker {
	return c.tracker
}

// Bindings returns the number of live row bindings.
func (c *Controller) Bindings() int {
	return c.binder.Len()
}

// Selected returns the selected application row, or nil.
func (c *Controller) Selected() *ApplicationRow {
	return c.Applications.Selected()
}
