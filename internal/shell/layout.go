package shell

import (
	"log/slog"
	"strings"

	"github.com/AntoineGS/tidyseal/internal/binding"
)

// Role identifies a header bar.
type Role int

// Header bar roles.
const (
	RoleApplications Role = iota
	RolePermissions
)

func (r Role) String() string {
	if r == RoleApplications {
		return "applications"
	}

	return "permissions"
}

// Layout drives pane navigation and which header bar owns the window
// controls.
type Layout struct {
	logger          *slog.Logger
	settings        Settings
	leaflet         *Leaflet
	applicationsBar *HeaderBar
	permissionsBar  *HeaderBar
	back            *Button

	main             Role
	settingsListener binding.Disposer
	roleBinding      binding.Disposer
	backBinding      binding.Disposer
}

// NewLayout wires nothing until Setup is called.
func NewLayout(settings Settings, leaflet *Leaflet, applicationsBar, permissionsBar *HeaderBar, back *Button, logger *slog.Logger) *Layout {
	if logger == nil {
		logger = slog.Default()
	}

	return &Layout{
		logger:          logger,
		settings:        settings,
		leaflet:         leaflet,
		applicationsBar: applicationsBar,
		permissionsBar:  permissionsBar,
		back:            back,
		main:            RolePermissions,
	}
}

// Setup makes the back button follow the fold state and derives bar roles.
func (l *Layout) Setup() {
	if l.backBinding == nil {
		l.backBinding = binding.Watch[bool](l.leaflet.Folded, l.back.Visible.Set)
	}

	l.SetupHeaders()
}

// SetupHeaders assigns bar roles from the decoration layout. It replaces the
// settings listener and the role binding from any previous call.
func (l *Layout) SetupHeaders() {
	if l.settingsListener != nil {
		l.settingsListener()
	}
	l.settingsListener = l.settings.OnDecorationLayoutChanged(func(string) {
		l.SetupHeaders()
	})

	mainBar, secondaryBar := l.permissionsBar, l.applicationsBar
	l.main = RolePermissions
	if strings.HasPrefix(l.settings.DecorationLayout(), "close") {
		mainBar, secondaryBar = l.applicationsBar, l.permissionsBar
		l.main = RoleApplications
	}

	mainBar.ShowWindowControls.Set(true)
	secondaryBar.ShowWindowControls.Set(false)

	if l.roleBinding != nil {
		l.roleBinding()
	}
	l.roleBinding = binding.Watch[bool](l.leaflet.Folded, secondaryBar.ShowWindowControls.Set)

	l.logger.Debug("header roles derived",
		slog.String("layout", l.settings.DecorationLayout()),
		slog.String("main", l.main.String()))
}

// MainBar returns the role owning window controls.
func (l *Layout) MainBar() Role {
	return l.main
}

// ShowApplications navigates to the applications pane and releases the back
// button.
func (l *Layout) ShowApplications() {
	l.leaflet.VisibleChild.Set(PaneApplications)
	l.back.Active.Set(false)
}

// ShowPermissions navigates to the permissions pane.
func (l *Layout) ShowPermissions() {
	l.leaflet.VisibleChild.Set(PanePermissions)
}

// Close releases the settings listener and every binding.
func (l *Layout) Close() {
	for _, d := range []*binding.Disposer{&l.settingsListener, &l.roleBinding, &l.backBinding} {
		if *d != nil {
			(*d)()
			*d = nil
		}
	}
}
