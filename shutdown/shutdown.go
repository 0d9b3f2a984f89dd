// Package shutdown runs cleanup callbacks once a trigger, such as a signal
// listener, reports that the process is going away.
package shutdown

import (
	"context"
	"sync"
)

type Callback interface {
	OnShutdown(trigger string) error
}

type Func func(string) error

func (f Func) OnShutdown(trigger string) error {
	return f(trigger)
}

// Trigger starts watching for a shutdown condition and calls Run on s when
// it occurs. Start must not block.
type Trigger interface {
	Name() string
	Start(ctx context.Context, s *Shutdown) error
}

type Shutdown struct {
	mu        sync.Mutex
	callbacks []Callback
	triggers  []Trigger
	onError   func(error)
	once      sync.Once
}

// New returns a Shutdown reporting callback failures to onError, which may
// be nil.
func New(onError func(error)) *Shutdown {
	return &Shutdown{onError: onError}
}

func (s *Shutdown) AddCallback(c Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, c)
}

func (s *Shutdown) AddTrigger(t Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, t)
}

// Start starts every trigger. Triggers stop watching when ctx is done.
func (s *Shutdown) Start(ctx context.Context) error {
	s.mu.Lock()
	triggers := append([]Trigger(nil), s.triggers...)
	s.mu.Unlock()

	for _, t := range triggers {
		if err := t.Start(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Run calls every callback concurrently and waits for them. Only the first
// call has any effect.
func (s *Shutdown) Run(trigger string) {
	s.once.Do(func() {
		s.mu.Lock()
		callbacks := append([]Callback(nil), s.callbacks...)
		s.mu.Unlock()

		var wg sync.WaitGroup
		for _, c := range callbacks {
			wg.Add(1)
			go func(c Callback) {
				defer wg.Done()
				s.report(c.OnShutdown(trigger))
			}(c)
		}
		wg.Wait()
	})
}

func (s *Shutdown) report(err error) {
	if err != nil && s.onError != nil {
		s.onError(err)
	}
}
