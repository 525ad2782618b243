// Package permissions is the permission model: live values for the selected
// application, backed by the override store.
package permissions

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/AntoineGS/tidyseal/internal/binding"
	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/AntoineGS/tidyseal/internal/state"
)

// Sentinel errors returned by the model.
var (
	// ErrUnknownProperty is returned for a property the catalog does not define
	ErrUnknownProperty = errors.New("unknown permission property")
	// ErrNoApplication is returned when an operation needs a selected application
	ErrNoApplication = errors.New("no application selected")
)

// Store is the subset of the override store used by the model.
type Store interface {
	GetOverrides(appID string) ([]state.Override, error)
	ApplyChanges(appID string, set []state.Override, deleted []string) error
	ClearOverrides(appID string) error
}

// Options configures a Model.
type Options struct {
	// FlatpakVersion of the host. Empty means unknown; every permission is
	// then treated as supported.
	FlatpakVersion string
	Logger         *slog.Logger
}

type entry struct {
	def       config.Permission
	value     config.Value
	supported bool
	cell      *binding.Cell[config.Value]
}

// Model holds one value cell per permission. Edits made through the cells are
// buffered and written on selection switch, reset and shutdown. It is not safe
// for concurrent use.
type Model struct {
	logger  *slog.Logger
	store   Store
	entries []*entry
	byKey   map[string]*entry

	appID   string
	pending map[string]*config.Value
	loading bool
	closed  bool
	err     error

	changed binding.Signal[bool]
	scope   binding.Scope
}

// New validates defs and returns a model with every value at its default.
func New(defs []config.Permission, store Store, opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := config.Config{Permissions: defs}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid permission catalog: %w", err)
	}

	var hostVersion []int
	if opts.FlatpakVersion != "" {
		v, err := config.ParseVersion(opts.FlatpakVersion)
		if err != nil {
			logger.Warn("ignoring unparsable flatpak version",
				slog.String("version", opts.FlatpakVersion))
		} else {
			hostVersion = v
		}
	}

	m := &Model{
		logger:  logger,
		store:   store,
		byKey:   make(map[string]*entry, len(defs)),
		pending: make(map[string]*config.Value),
	}

	for _, def := range defs {
		// Validate already parsed every default.
		value, _ := def.DefaultValue() //nolint:errcheck // validated above

		e := &entry{
			def:       def,
			value:     value,
			supported: isSupported(def.Requires, hostVersion),
			cell:      binding.NewCell(value),
		}

		key := def.Property
		m.scope.Add(e.cell.Observe(func(v config.Value) { m.edited(key, v) }))
		m.entries = append(m.entries, e)
		m.byKey[key] = e
	}

	return m, nil
}

func isSupported(requires string, host []int) bool {
	if requires == "" || host == nil {
		return true
	}

	want, err := config.ParseVersion(requires)
	if err != nil {
		return false
	}

	return config.CompareVersions(host, want) >= 0
}

// All returns the catalog with current values and support flags, in order.
func (m *Model) All() []config.Permission {
	out := make([]config.Permission, len(m.entries))
	for i, e := range m.entries {
		p := e.def
		p.Value = e.cell.Get()
		p.Supported = e.supported
		out[i] = p
	}

	return out
}

// Property returns the value cell for key, or nil when key is unknown.
func (m *Model) Property(key string) binding.Property[config.Value] {
	e, ok := m.byKey[key]
	if !ok {
		return nil
	}

	return e.cell
}

// Set validates and stores a value for key on the selected application.
func (m *Model) Set(key, raw string) error {
	if m.appID == "" {
		return ErrNoApplication
	}

	e, ok := m.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, key)
	}

	v, err := config.ParseValue(e.def.Kind, raw)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	e.cell.Set(v)

	return nil
}

// SelectedApplication returns the selected application ID.
func (m *Model) SelectedApplication() string {
	return m.appID
}

// SetSelectedApplication flushes pending edits and loads the overrides of id.
func (m *Model) SetSelectedApplication(id string) {
	if m.closed {
		return
	}

	m.flush()
	m.appID = id
	m.load()
	m.changed.Emit(m.overridden())
}

// Reset clears every override of the selected application.
func (m *Model) Reset() {
	if m.closed || m.appID == "" {
		return
	}

	clear(m.pending)
	if err := m.store.ClearOverrides(m.appID); err != nil {
		m.fail("clearing overrides", err)
		// Show what the store still holds.
		m.load()
		m.changed.Emit(m.overridden())
		return
	}

	m.setAll(func(e *entry) config.Value { return e.value })
	m.changed.Emit(false)

	m.logger.Debug("overrides reset", slog.String("app_id", m.appID))
}

// Shutdown writes pending edits. The model ignores further changes.
func (m *Model) Shutdown() {
	if m.closed {
		return
	}

	m.flush()
	m.closed = true
	m.scope.Close()
}

// OnChanged registers fn, called with the override state of the selected
// application after every change.
func (m *Model) OnChanged(fn func(overridden bool)) binding.Disposer {
	return m.changed.Connect(fn)
}

// Overridden reports whether any value differs from its default.
func (m *Model) Overridden() bool {
	return m.overridden()
}

// Err returns the last store error, if any. Failed writes are not retried.
func (m *Model) Err() error {
	return m.err
}

// Defaults returns the default value of every property.
func (m *Model) Defaults() map[string]config.Value {
	out := make(map[string]config.Value, len(m.entries))
	for _, e := range m.entries {
		out[e.def.Property] = e.value
	}

	return out
}

// Overrides returns the stored overrides of appID that the catalog knows.
func (m *Model) Overrides(appID string) (map[string]config.Value, error) {
	stored, err := m.store.GetOverrides(appID)
	if err != nil {
		return nil, fmt.Errorf("loading overrides for %s: %w", appID, err)
	}

	out := make(map[string]config.Value, len(stored))
	for _, o := range stored {
		e, ok := m.byKey[o.Property]
		if !ok {
			m.logger.Debug("skipping override for unknown property",
				slog.String("app_id", appID),
				slog.String("property", o.Property))
			continue
		}

		v, err := config.ParseValue(e.def.Kind, o.Value)
		if err != nil {
			m.logger.Warn("skipping unparsable override",
				slog.String("app_id", appID),
				slog.String("property", o.Property),
				slog.String("error", err.Error()))
			continue
		}

		out[o.Property] = v
	}

	return out, nil
}

func (m *Model) edited(key string, v config.Value) {
	if m.loading || m.closed || m.appID == "" {
		return
	}

	e := m.byKey[key]
	if v.Kind != e.def.Kind {
		m.logger.Warn("ignoring value of the wrong kind",
			slog.String("property", key),
			slog.String("kind", string(v.Kind)))
		return
	}

	if v == e.value {
		m.pending[key] = nil
	} else {
		m.pending[key] = &v
	}

	m.changed.Emit(m.overridden())
}

func (m *Model) load() {
	overrides, err := m.Overrides(m.appID)
	if err != nil {
		m.fail("loading overrides", err)
	}

	m.setAll(func(e *entry) config.Value {
		if v, ok := overrides[e.def.Property]; ok {
			return v
		}
		return e.value
	})
}

func (m *Model) setAll(value func(*entry) config.Value) {
	m.loading = true
	defer func() { m.loading = false }()

	for _, e := range m.entries {
		e.cell.Set(value(e))
	}
}

func (m *Model) overridden() bool {
	for _, e := range m.entries {
		if e.cell.Get() != e.value {
			return true
		}
	}

	return false
}

func (m *Model) flush() {
	if m.appID == "" || len(m.pending) == 0 {
		return
	}

	keys := make([]string, 0, len(m.pending))
	for k := range m.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var set []state.Override
	var deleted []string

	for _, k := range keys {
		v := m.pending[k]
		if v == nil {
			deleted = append(deleted, k)
			continue
		}
		set = append(set, state.Override{
			AppID:    m.appID,
			Property: k,
			Kind:     string(v.Kind),
			Value:    v.String(),
		})
	}

	// Pending edits belong to m.appID only; a failed write drops them.
	clear(m.pending)

	if err := m.store.ApplyChanges(m.appID, set, deleted); err != nil {
		m.fail("writing overrides", err)
		return
	}

	m.logger.Debug("overrides written",
		slog.String("app_id", m.appID),
		slog.Int("set", len(set)),
		slog.Int("deleted", len(deleted)))
}

func (m *Model) fail(op string, err error) {
	m.err = fmt.Errorf("%s for %s: %w", op, m.appID, err)
	m.logger.Error(op, slog.String("app_id", m.appID), slog.String("error", err.Error()))
}
