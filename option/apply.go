package option

import (
	"fmt"

	"khetao.com/optkit/tokens"
)

// endOfOptions stops the scan for option names; whatever follows belongs to
// another consumer.
const endOfOptions = "--"

// SetOptions applies tokens to the settings declared on t. Flags absent from
// tokens are reset to false; absent optional values are left untouched.
// Settings applied before a failing one stay applied. tokens is not
// modified.
func SetOptions(tokens []string, target any, t *Type) error {
	return setOptions(tokens, target, t, 0)
}

// SetOptionsForHierarchy applies the whole of tokens to every type of
// target's hierarchy up to and including oldest, concrete type first. A
// name declared by two of those types is rejected before anything is set.
func SetOptionsForHierarchy(tokens []string, target Configurable, oldest *Type) error {
	return setOptionsForHierarchy(tokens, target, oldest, 0)
}

func setOptionsForHierarchy(tokens []string, target Configurable, oldest *Type, depth int) error {
	types := walk(target.Hierarchy(), oldest)
	if err := checkAmbiguous(types); err != nil {
		return err
	}
	valued := valuedFlags(types...)
	for _, t := range types {
		if err := applyType(tokens, target, t, valued, depth); err != nil {
			return err
		}
	}
	return nil
}

func setOptions(tokens []string, target any, t *Type, depth int) error {
	return applyType(tokens, target, t, valuedFlags(t), depth)
}

// valuedFlags collects the flags of types that take a value. A hierarchy
// shares one set, so a value token of any of its types is skipped by all.
func valuedFlags(types ...*Type) map[string]bool {
	valued := make(map[string]bool)
	for _, t := range types {
		for _, s := range t.exposed() {
			if s.kind != kindFlag {
				valued[s.flag()] = true
			}
		}
	}
	return valued
}

func applyType(tokens []string, target any, t *Type, valued map[string]bool, depth int) error {
	settings := t.exposed()
	remaining := append([]string(nil), tokens...)
	for _, s := range settings {
		if err := s.apply(remaining, valued, target, depth); err != nil {
			return err
		}
	}
	return nil
}

// find returns the position of flag in tokens, or -1. The token following
// a valued option is its value and is never matched, not even as "--".
func find(tokens []string, flag string, valued map[string]bool) int {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == endOfOptions {
			return -1
		}
		if tok == flag {
			return i
		}
		if valued[tok] {
			i++
		}
	}
	return -1
}

// apply sets s from remaining and blanks the tokens it consumed.
func (s Setting) apply(remaining []string, valued map[string]bool, target any, depth int) error {
	name := flagName(s.Name)
	pos := find(remaining, s.flag(), valued)

	if s.kind == kindFlag {
		if pos >= 0 {
			remaining[pos] = ""
		}
		return s.setFlag(target, pos >= 0)
	}

	if pos < 0 {
		if s.Required {
			return &MissingValueError{Option: name, Required: true}
		}
		return nil
	}
	if pos+1 >= len(remaining) {
		return &MissingValueError{Option: name}
	}
	raw := remaining[pos+1]
	remaining[pos], remaining[pos+1] = "", ""

	if s.kind == kindNested {
		return s.applyNested(target, raw, depth+1)
	}
	return s.setText(target, raw)
}

func (s Setting) applyNested(target any, raw string, depth int) error {
	name := flagName(s.Name)
	if depth > MaxDepth {
		return &ConversionError{Option: name, Token: raw, Err: ErrDepthExceeded}
	}

	spec, err := tokens.Split(raw)
	if err != nil {
		return &ConversionError{Option: name, Token: raw, Err: err}
	}
	if len(spec) == 0 {
		return &ConversionError{Option: name, Token: raw, Err: ErrEmptySpec}
	}

	h, err := s.nestedRegistry().New(spec[0])
	if err != nil {
		return err
	}
	if c, ok := h.(Configurable); ok {
		err = setOptionsForHierarchy(spec[1:], c, nil, depth)
	} else {
		err = h.SetOptions(spec[1:])
	}
	if err != nil {
		return fmt.Errorf("option: -%s %s: %w", name, spec[0], err)
	}

	return s.setNested(target, h, raw)
}
