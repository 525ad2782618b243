package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the catalog for problems a user can fix by editing it.
// Duplicate application IDs are allowed; duplicate permission properties are not.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	for i, app := range c.Applications {
		if strings.TrimSpace(app.ID) == "" {
			errs.Add(NewFieldError(fmt.Sprintf("applications[%d]", i), "id", app.ID, errors.New("id is required")))
		}
	}

	seen := make(map[string]bool, len(c.Permissions))
	for i := range c.Permissions {
		errs.Add(ValidatePermission(&c.Permissions[i]))

		prop := c.Permissions[i].Property
		if prop != "" && seen[prop] {
			errs.Add(NewFieldError(prop, "property", prop, errors.New("duplicate property")))
		}
		seen[prop] = true
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

// ValidatePermission validates a single permission definition.
func ValidatePermission(p *Permission) error {
	name := p.Property
	if strings.TrimSpace(name) == "" {
		return NewFieldError("(unnamed)", "property", "", errors.New("property is required"))
	}

	if strings.TrimSpace(p.Group) == "" {
		return NewFieldError(name, "group", p.Group, errors.New("group is required"))
	}

	if !p.Kind.Valid() {
		return NewFieldError(name, "kind", string(p.Kind), fmt.Errorf("%w: must be %q or %q", ErrInvalidConfig, KindToggle, KindText))
	}

	if _, err := p.DefaultValue(); err != nil {
		return NewFieldError(name, "default", string(p.Default), err)
	}

	if p.Requires != "" {
		if _, err := ParseVersion(p.Requires); err != nil {
			return NewFieldError(name, "requires", p.Requires, err)
		}
	}

	return nil
}

// ParseVersion parses a dotted numeric version such as "1.12.4".
func ParseVersion(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty version", ErrInvalidValue)
	}

	parts := strings.Split(s, ".")
	out := make([]int, 0, len(parts))

	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad version %q", ErrInvalidValue, s)
		}
		out = append(out, n)
	}

	return out, nil
}

// CompareVersions returns -1, 0 or 1 as a is older, equal or newer than b.
// Missing trailing components count as zero.
func CompareVersions(a, b []int) int {
	n := max(len(a), len(b))

	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}

		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}

	return 0
}
