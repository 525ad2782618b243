package shell

// Resetter clears the overrides of the selected application.
type Resetter interface {
	Reset()
}

// Tracker mirrors the override state of the selected application onto the
// reset button.
type Tracker struct {
	model        Resetter
	button       *Button
	hasOverrides bool
}

// NewTracker returns a tracker driving button.
func NewTracker(model Resetter, button *Button) *Tracker {
	return &Tracker{model: model, button: button}
}

// OnModelChanged records the model's override state.
func (t *Tracker) OnModelChanged(overridden bool) {
	t.hasOverrides = overridden
	t.button.Sensitive.Set(overridden)
}

// SelectionChanged drops the previous application's state until the model
// reports on the new one.
func (t *Tracker) SelectionChanged() {
	t.OnModelChanged(false)
}

// Reset asks the model to clear overrides. Rows follow through their
// bindings.
func (t *Tracker) Reset() {
	t.model.Reset()
}

// HasOverrides returns the last reported state.
func (t *Tracker) HasOverrides() bool {
	return t.hasOverrides
}
