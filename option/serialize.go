package option

import (
	"khetao.com/optkit/tokens"
)

// MaxDepth bounds the nesting of configurable values.
const MaxDepth = 32

// GetOptions renders the settings declared on t with their current values
// in target. target must be the type t describes, or embed it.
func GetOptions(target any, t *Type) ([]string, error) {
	return getOptions(target, t, 0)
}

// GetOptionsForHierarchy renders the settings of every type of target's
// hierarchy up to and including oldest, concrete type first.
func GetOptionsForHierarchy(target Configurable, oldest *Type) ([]string, error) {
	return getOptionsForHierarchy(target, oldest, 0)
}

func getOptionsForHierarchy(target Configurable, oldest *Type, depth int) ([]string, error) {
	types := walk(target.Hierarchy(), oldest)
	if err := checkAmbiguous(types); err != nil {
		return nil, err
	}

	var out []string
	for _, t := range types {
		opts, err := getOptions(target, t, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, opts...)
	}
	return out, nil
}

func getOptions(target any, t *Type, depth int) ([]string, error) {
	var out []string
	for _, s := range t.exposed() {
		wrap := func(err error) error {
			return &SerializationError{Type: t.Name, Option: flagName(s.Name), Err: err}
		}

		switch s.kind {
		case kindFlag:
			v, err := s.getFlag(target)
			if err != nil {
				return nil, wrap(err)
			}
			if v {
				out = append(out, s.flag())
			}
		case kindValue:
			v, err := s.getText(target)
			if err != nil {
				return nil, wrap(err)
			}
			out = append(out, s.flag(), v)
		case kindNested:
			h, err := s.getNested(target)
			if err != nil {
				return nil, wrap(err)
			}
			if h == nil {
				continue
			}
			v, err := s.nestedString(h, depth+1)
			if err != nil {
				return nil, wrap(err)
			}
			out = append(out, s.flag(), v)
		}
	}
	return out, nil
}

// nestedString renders h as its registered type name followed by its
// joined options.
func (s Setting) nestedString(h Handler, depth int) (string, error) {
	if depth > MaxDepth {
		return "", ErrDepthExceeded
	}
	name, ok := s.nestedRegistry().NameOf(h)
	if !ok {
		return "", ErrNotRegistered
	}

	var (
		opts []string
		err  error
	)
	if c, ok := h.(Configurable); ok {
		opts, err = getOptionsForHierarchy(c, nil, depth)
	} else {
		opts, err = h.Options()
	}
	if err != nil {
		return "", err
	}

	if len(opts) == 0 {
		return name, nil
	}
	return name + " " + tokens.Join(opts), nil
}
