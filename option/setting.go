package option

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Position is the display position of a setting. The zero value is
// unordered: it sorts after every position made with At.
type Position struct {
	index int
	set   bool
}

// Unordered is the zero Position.
var Unordered Position

// At returns the explicit position i. Lower positions are listed first.
func At(i int) Position {
	return Position{index: i, set: true}
}

func (p Position) before(q Position) bool {
	if !p.set {
		return false
	}
	if !q.set {
		return true
	}
	return p.index < q.index
}

// Meta is the declared metadata of a setting. An empty Name hides the
// setting from discovery, serialization and application. A Meta without an
// Order is listed after the ordered settings of its type.
type Meta struct {
	Name        string
	Description string
	Synopsis    string
	Order       Position
	// Required makes the absence of a value-bearing option an error.
	Required bool
}

type kind int

const (
	kindFlag kind = iota
	kindValue
	kindNested
)

func (k kind) String() string {
	switch k {
	case kindFlag:
		return "flag"
	case kindValue:
		return "value"
	case kindNested:
		return "nested"
	}
	return "unknown"
}

// Setting is one declared setting together with its typed accessors. Build
// it with Flag, String, Int, Float, Duration, Text or Nested.
type Setting struct {
	Meta

	kind     kind
	registry *Registry

	getFlag func(target any) (bool, error)
	setFlag func(target any, v bool) error

	getText func(target any) (string, error)
	setText func(target any, raw string) error

	getNested func(target any) (Handler, error)
	// raw is the token h was built from, reported on a type mismatch.
	setNested func(target any, h Handler, raw string) error
}

// Option returns the normalized record for s.
func (s Setting) Option() Option {
	return normalize(s.Meta, s.numArguments())
}

func (s Setting) numArguments() int {
	if s.kind == kindFlag {
		return 0
	}
	return 1
}

func (s Setting) flag() string {
	return "-" + flagName(s.Name)
}

func (s Setting) nestedRegistry() *Registry {
	if s.registry != nil {
		return s.registry
	}
	return DefaultRegistry
}

func bind[T any](target any) (T, error) {
	t, ok := target.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %T is not %s", ErrTargetType, target, reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}

// Flag declares a boolean setting taking no argument.
func Flag[T any](m Meta, get func(T) bool, set func(T, bool)) Setting {
	return Setting{
		Meta: m,
		kind: kindFlag,
		getFlag: func(target any) (bool, error) {
			t, err := bind[T](target)
			if err != nil {
				return false, err
			}
			return get(t), nil
		},
		setFlag: func(target any, v bool) error {
			t, err := bind[T](target)
			if err != nil {
				return err
			}
			set(t, v)
			return nil
		},
	}
}

// Text declares a value-bearing setting of any type V converted with the
// supplied format and parse functions.
func Text[T, V any](m Meta, get func(T) V, set func(T, V), format func(V) string, parse func(string) (V, error)) Setting {
	return Setting{
		Meta: m,
		kind: kindValue,
		getText: func(target any) (string, error) {
			t, err := bind[T](target)
			if err != nil {
				return "", err
			}
			return format(get(t)), nil
		},
		setText: func(target any, raw string) error {
			t, err := bind[T](target)
			if err != nil {
				return err
			}
			v, err := parse(raw)
			if err != nil {
				return &ConversionError{Option: flagName(m.Name), Token: raw, Err: err}
			}
			set(t, v)
			return nil
		},
	}
}

// String declares a string setting.
func String[T any](m Meta, get func(T) string, set func(T, string)) Setting {
	return Text(m, get, set,
		func(v string) string { return v },
		func(raw string) (string, error) { return raw, nil })
}

// Int declares an integer setting.
func Int[T any](m Meta, get func(T) int, set func(T, int)) Setting {
	return Text(m, get, set, strconv.Itoa, strconv.Atoi)
}

// Float declares a float64 setting, rendered in its shortest exact form.
func Float[T any](m Meta, get func(T) float64, set func(T, float64)) Setting {
	return Text(m, get, set,
		func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) })
}

// Duration declares a time.Duration setting.
func Duration[T any](m Meta, get func(T) time.Duration, set func(T, time.Duration)) Setting {
	return Text(m, get, set, time.Duration.String, time.ParseDuration)
}

// Nested declares a setting whose value is itself an option handler. The
// value travels as one token holding its registered type name followed by
// its own options. A nil registry means DefaultRegistry.
func Nested[T any, H Handler](m Meta, r *Registry, get func(T) H, set func(T, H)) Setting {
	return Setting{
		Meta:     m,
		kind:     kindNested,
		registry: r,
		getNested: func(target any) (Handler, error) {
			t, err := bind[T](target)
			if err != nil {
				return nil, err
			}
			h := get(t)
			if isNil(h) {
				return nil, nil
			}
			return h, nil
		},
		setNested: func(target any, h Handler, raw string) error {
			t, err := bind[T](target)
			if err != nil {
				return err
			}
			v, ok := h.(H)
			if !ok {
				return &ConversionError{
					Option: flagName(m.Name),
					Token:  raw,
					Err:    fmt.Errorf("%w: %T is not %s", ErrTargetType, h, reflect.TypeOf((*H)(nil)).Elem()),
				}
			}
			set(t, v)
			return nil
		},
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
