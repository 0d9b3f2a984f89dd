package option

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
)

// Factory creates a default-configured handler.
type Factory func() Handler

// Registry resolves fully-qualified type names to handler factories. It is
// safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	names     map[reflect.Type]string
	logger    logr.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for registration and construction events.
func WithLogger(l logr.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// DefaultRegistry serves Nested settings declared without a registry.
var DefaultRegistry = NewRegistry()

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		names:     make(map[reflect.Type]string),
		logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetLogger replaces the registry logger.
func (r *Registry) SetLogger(l logr.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

// Register adds a factory under name. The factory is invoked once so the
// settings tables of a Configurable product can be validated and its Go
// type mapped back to name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("option: register: empty type name")
	}
	if factory == nil {
		return fmt.Errorf("option: register %q: nil factory", name)
	}

	sample := factory()
	if isNil(sample) {
		return fmt.Errorf("option: register %q: factory returned nil", name)
	}
	if c, ok := sample.(Configurable); ok {
		for _, t := range c.Hierarchy() {
			if err := Validate(t); err != nil {
				return fmt.Errorf("option: register %q: %w", name, err)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("option: register %q: already registered", name)
	}
	rt := reflect.TypeOf(sample)
	if prev, ok := r.names[rt]; ok {
		return fmt.Errorf("option: register %q: %s is already registered as %q", name, rt, prev)
	}
	r.factories[name] = factory
	r.names[rt] = name
	r.logger.V(1).Info("registered option handler", "name", name, "goType", rt.String())
	return nil
}

// MustRegister is Register that panics on error, for use in init functions.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New instantiates the handler registered under name.
func (r *Registry) New(name string) (Handler, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	logger := r.logger
	r.mu.RUnlock()

	if !ok {
		logger.V(1).Info("unknown option handler", "name", name)
		return nil, &UnknownTypeError{Name: name}
	}
	h := factory()
	if isNil(h) {
		return nil, &UnknownTypeError{Name: name, Err: fmt.Errorf("factory returned nil")}
	}
	return h, nil
}

// ForName instantiates the handler registered under name and applies
// tokens to it.
func (r *Registry) ForName(name string, tokens []string) (Handler, error) {
	h, err := r.New(name)
	if err != nil {
		return nil, err
	}
	if err := h.SetOptions(tokens); err != nil {
		return nil, err
	}
	return h, nil
}

// NameOf returns the name h's dynamic type was registered under.
func (r *Registry) NameOf(h Handler) (string, bool) {
	if h == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[reflect.TypeOf(h)]
	return name, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Match returns the registered names equal to suffix or ending in
// "."+suffix, sorted.
func (r *Registry) Match(suffix string) []string {
	if suffix == "" {
		return nil
	}
	var out []string
	for _, name := range r.Names() {
		if name == suffix || strings.HasSuffix(name, "."+suffix) {
			out = append(out, name)
		}
	}
	return out
}

// Register adds a factory to DefaultRegistry.
func Register(name string, factory Factory) error {
	return DefaultRegistry.Register(name, factory)
}
