package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the value type of a permission.
type Kind string

// Permission kinds.
const (
	// KindToggle is an on/off permission
	KindToggle Kind = "toggle"
	// KindText is a free-form text permission (paths, names, variables)
	KindText Kind = "text"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindToggle || k == KindText
}

// Value is the current value of a permission. Only the field matching Kind
// is meaningful. Value is comparable with ==.
type Value struct {
	Kind Kind
	Text string
	Bool bool
}

// ToggleValue returns a toggle value.
func ToggleValue(b bool) Value {
	return Value{Kind: KindToggle, Bool: b}
}

// TextValue returns a text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// String renders the value the way it is written in the catalog and the CLI.
func (v Value) String() string {
	if v.Kind == KindToggle {
		return strconv.FormatBool(v.Bool)
	}

	return v.Text
}

// ParseValue parses s as a value of the given kind.
func ParseValue(kind Kind, s string) (Value, error) {
	switch kind {
	case KindToggle:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
		}
		return ToggleValue(b), nil
	case KindText:
		return TextValue(s), nil
	}

	return Value{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidValue, kind)
}

// Scalar holds any YAML scalar as its literal text, so both `default: true`
// and `default: "host;home"` decode.
type Scalar string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = Scalar(node.Value)

	return nil
}

// Application is a sandboxed application that can be granted permissions.
type Application struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	ThemePath string `yaml:"theme_path,omitempty"`
}

// DisplayName returns Name, or ID when no name is set.
func (a Application) DisplayName() string {
	if strings.TrimSpace(a.Name) == "" {
		return a.ID
	}

	return a.Name
}

// Permission describes a grantable permission. Entries sharing a Group are
// expected to be contiguous; consumers keep the declared order.
type Permission struct {
	Group            string `yaml:"group"`
	GroupDescription string `yaml:"group_description,omitempty"`
	Description      string `yaml:"description"`
	Property         string `yaml:"property"`
	Kind             Kind   `yaml:"kind"`
	Default          Scalar `yaml:"default,omitempty"`
	// Requires is the minimum Flatpak version supporting this permission
	Requires string `yaml:"requires,omitempty"`

	// Value and Supported are filled in by the permission model.
	Value     Value `yaml:"-"`
	Supported bool  `yaml:"-"`
}

// DefaultValue parses Default according to Kind. An empty default is false
// for toggles and the empty string for text.
func (p Permission) DefaultValue() (Value, error) {
	if p.Default == "" {
		if p.Kind == KindToggle {
			return ToggleValue(false), nil
		}
		return ParseValue(p.Kind, "")
	}

	return ParseValue(p.Kind, string(p.Default))
}
