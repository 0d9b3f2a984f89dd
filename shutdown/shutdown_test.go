package shutdown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTrigger struct {
	started bool
	err     error
}

func (m *manualTrigger) Name() string { return "manual" }

func (m *manualTrigger) Start(context.Context, *Shutdown) error {
	m.started = true
	return m.err
}

func TestRunCallsEveryCallbackOnce(t *testing.T) {
	var (
		mu       sync.Mutex
		errs     []error
		calls    int32
		triggers []string
	)
	s := New(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	})
	s.AddCallback(Func(func(trigger string) error {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		defer mu.Unlock()
		triggers = append(triggers, trigger)
		return nil
	}))
	s.AddCallback(Func(func(string) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("flush failed")
	}))

	s.Run("manual")
	s.Run("manual")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"manual"}, triggers)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "flush failed")
}

func TestStartTriggers(t *testing.T) {
	s := New(nil)
	ok := &manualTrigger{}
	bad := &manualTrigger{err: errors.New("no signals")}
	s.AddTrigger(ok)
	s.AddTrigger(bad)

	assert.EqualError(t, s.Start(context.Background()), "no signals")
	assert.True(t, ok.started)
}
