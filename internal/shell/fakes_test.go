package shell

import (
	"github.com/AntoineGS/tidyseal/internal/binding"
	"github.com/AntoineGS/tidyseal/internal/config"
)

type fakeApps []config.Application

func (f fakeApps) All() []config.Application { return f }

// fakeModel keeps overrides per application, loading them into its cells on
// selection like the real model does.
type fakeModel struct {
	defs      []config.Permission
	cells     map[string]*binding.Cell[config.Value]
	overrides map[string]map[string]config.Value
	appID     string
	loading   bool
	changed   binding.Signal[bool]

	writes    map[string]int
	resets    []string
	selected  []string
	shutdowns int
}

func newFakeModel(defs ...config.Permission) *fakeModel {
	m := &fakeModel{
		defs:      defs,
		cells:     make(map[string]*binding.Cell[config.Value]),
		overrides: make(map[string]map[string]config.Value),
		writes:    make(map[string]int),
	}

	for _, d := range defs {
		key := d.Property
		cell := binding.NewCell(d.Value)
		cell.Observe(func(v config.Value) {
			m.writes[key]++
			if m.loading || m.appID == "" {
				return
			}
			if v == m.defaultOf(key) {
				delete(m.overrides[m.appID], key)
			} else {
				if m.overrides[m.appID] == nil {
					m.overrides[m.appID] = make(map[string]config.Value)
				}
				m.overrides[m.appID][key] = v
			}
			m.changed.Emit(len(m.overrides[m.appID]) > 0)
		})
		m.cells[key] = cell
	}

	return m
}

func (m *fakeModel) defaultOf(key string) config.Value {
	for _, d := range m.defs {
		if d.Property == key {
			return d.Value
		}
	}

	return config.Value{}
}

func (m *fakeModel) All() []config.Permission { return m.defs }

func (m *fakeModel) Property(key string) binding.Property[config.Value] {
	c, ok := m.cells[key]
	if !ok {
		return nil
	}

	return c
}

func (m *fakeModel) load() {
	m.loading = true
	defer func() { m.loading = false }()

	for _, d := range m.defs {
		v, ok := m.overrides[m.appID][d.Property]
		if !ok {
			v = d.Value
		}
		m.cells[d.Property].Set(v)
	}
}

func (m *fakeModel) SetSelectedApplication(id string) {
	m.selected = append(m.selected, id)
	m.appID = id
	m.load()
	m.changed.Emit(len(m.overrides[id]) > 0)
}

func (m *fakeModel) Reset() {
	m.resets = append(m.resets, m.appID)
	delete(m.overrides, m.appID)
	m.load()
	m.changed.Emit(false)
}

func (m *fakeModel) Shutdown() { m.shutdowns++ }

func (m *fakeModel) OnChanged(fn func(bool)) binding.Disposer {
	return m.changed.Connect(fn)
}

type fakeSettings struct {
	layout  string
	changed binding.Signal[string]
}

func (s *fakeSettings) DecorationLayout() string { return s.layout }

func (s *fakeSettings) OnDecorationLayoutChanged(fn func(string)) binding.Disposer {
	return s.changed.Connect(fn)
}

func (s *fakeSettings) set(layout string) {
	s.layout = layout
	s.changed.Emit(layout)
}

func toggle(group, property string, value, supported bool) config.Permission {
	return config.Permission{
		Group:       group,
		Description: property,
		Property:    property,
		Kind:        config.KindToggle,
		Value:       config.ToggleValue(value),
		Supported:   supported,
	}
}

func text(group, property, value string) config.Permission {
	return config.Permission{
		Group:       group,
		Description: property,
		Property:    property,
		Kind:        config.KindText,
		Value:       config.TextValue(value),
		Supported:   true,
	}
}

func sampleApps() fakeApps {
	return fakeApps{
		{ID: "org.app.A", Name: "App A"},
		{ID: "org.app.B", Name: "App B"},
	}
}

func samplePermissions() []config.Permission {
	return []config.Permission{
		toggle("share", "shared.network", true, true),
		toggle("share", "shared.ipc", true, true),
		toggle("socket", "sockets.x11", false, true),
		toggle("socket", "sockets.pcsc", false, false),
		text("filesystem", "filesystems.custom", ""),
	}
}

func newTestController(apps fakeApps, model *fakeModel, settings *fakeSettings) *Controller {
	if settings == nil {
		settings = &fakeSettings{layout: "appmenu:close"}
	}

	return New(Deps{Applications: apps, Permissions: model, Settings: settings})
}
