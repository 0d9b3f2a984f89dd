package option

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDepthExceeded is returned when nested values go deeper than MaxDepth.
	ErrDepthExceeded = errors.New("nesting deeper than the maximum depth")
	// ErrTargetType is returned when an accessor is handed a target of the
	// wrong dynamic type.
	ErrTargetType = errors.New("target has the wrong type")
	// ErrNotRegistered is returned when a nested value's type has no
	// registered name.
	ErrNotRegistered = errors.New("type is not registered")
	// ErrEmptySpec is returned for an empty nested value token.
	ErrEmptySpec = errors.New("empty option handler specification")
)

// DiscoveryError reports malformed setting metadata.
type DiscoveryError struct {
	Type   string
	Option string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Option == "" {
		return fmt.Sprintf("option: type %q: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("option: type %q option -%s: %v", e.Type, e.Option, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SerializationError reports a setting whose current value could not be
// rendered as tokens.
type SerializationError struct {
	Type   string
	Option string
	Err    error
}

func (e *SerializationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("option: serialize -%s of %q: %v", e.Option, e.Type, e.Err)
}

func (e *SerializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConversionError reports a token that could not be converted to the
// declared value type of a setting.
type ConversionError struct {
	Option string
	Token  string
	Err    error
}

func (e *ConversionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("option: -%s: cannot use %q: %v", e.Option, e.Token, e.Err)
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AmbiguousOptionError reports a command-line name declared by more than
// one type of the same hierarchy walk.
type AmbiguousOptionError struct {
	Option string
	Types  []string
}

func (e *AmbiguousOptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("option: -%s is declared by %s", e.Option, strings.Join(e.Types, " and "))
}

// UnknownTypeError reports a nested type name that could not be resolved
// or instantiated.
type UnknownTypeError struct {
	Name string
	Err  error
}

func (e *UnknownTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("option: unknown type %q", e.Name)
	}
	return fmt.Sprintf("option: cannot construct %q: %v", e.Name, e.Err)
}

func (e *UnknownTypeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MissingValueError reports a value-bearing option given without its value,
// or a required option that was not given at all.
type MissingValueError struct {
	Option   string
	Required bool
}

func (e *MissingValueError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Required {
		return fmt.Sprintf("option: required option -%s not given", e.Option)
	}
	return fmt.Sprintf("option: no value given for -%s", e.Option)
}
