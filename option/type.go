package option

import (
	"errors"
	"sort"
)

// Handler is implemented by every object that can describe, report and
// accept its own options.
type Handler interface {
	ListOptions() []Option
	Options() ([]string, error)
	SetOptions(tokens []string) error
}

// Configurable objects expose the settings tables of their type and its
// ancestors, concrete type first.
type Configurable interface {
	Hierarchy() []*Type
}

// Type is the table of settings declared directly on one level of a
// configurable hierarchy.
type Type struct {
	// Name is the fully-qualified name, also used as the registry key.
	Name     string
	Settings []Setting
}

// exposed returns the settings of t with a command-line name, stably sorted
// by display order. A name that is only a dash counts as no name.
func (t *Type) exposed() []Setting {
	if t == nil {
		return nil
	}
	out := make([]Setting, 0, len(t.Settings))
	for _, s := range t.Settings {
		if flagName(s.Name) != "" {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order.before(out[j].Order)
	})
	return out
}

// walk returns chain up to and including oldest. If oldest is nil or not in
// chain the whole chain is walked.
func walk(chain []*Type, oldest *Type) []*Type {
	if oldest == nil {
		return chain
	}
	for i, t := range chain {
		if t == oldest {
			return chain[:i+1]
		}
	}
	return chain
}

// checkAmbiguous reports a command-line name exposed by more than one of
// types.
func checkAmbiguous(types []*Type) error {
	owner := make(map[string]string)
	for _, t := range types {
		for _, s := range t.exposed() {
			name := flagName(s.Name)
			if prev, ok := owner[name]; ok {
				return &AmbiguousOptionError{Option: name, Types: []string{prev, t.Name}}
			}
			owner[name] = t.Name
		}
	}
	return nil
}

// Validate checks the settings table of t for duplicate names and settings
// built without accessors.
func Validate(t *Type) error {
	if t == nil {
		return &DiscoveryError{Err: errors.New("nil type")}
	}
	if t.Name == "" {
		return &DiscoveryError{Err: errors.New("type has no name")}
	}
	seen := make(map[string]bool, len(t.Settings))
	for _, s := range t.Settings {
		if s.Name == "" {
			continue
		}
		name := flagName(s.Name)
		if name == "" {
			return &DiscoveryError{Type: t.Name, Option: s.Name, Err: errors.New("name is only a dash")}
		}
		if seen[name] {
			return &DiscoveryError{Type: t.Name, Option: name, Err: errors.New("declared more than once")}
		}
		seen[name] = true

		var ok bool
		switch s.kind {
		case kindFlag:
			ok = s.getFlag != nil && s.setFlag != nil
		case kindValue:
			ok = s.getText != nil && s.setText != nil
		case kindNested:
			ok = s.getNested != nil && s.setNested != nil
		}
		if !ok {
			return &DiscoveryError{Type: t.Name, Option: name, Err: errors.New("setting has no accessors")}
		}
	}
	return nil
}
