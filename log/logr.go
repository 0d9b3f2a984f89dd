package log

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// logr verbosity above this is emitted at debug level.
const debugLevelThreshold = 0

type scopeSink struct {
	s    *Scope
	name string
}

var _ logr.LogSink = &scopeSink{}

// NewLogrAdapter exposes s as a logr.Logger for libraries that log through
// logr. logr names are kept as a "logger" label.
func NewLogrAdapter(s *Scope) logr.Logger {
	return logr.New(&scopeSink{s: s})
}

func (ss *scopeSink) Init(logr.RuntimeInfo) {}

func (ss *scopeSink) Enabled(level int) bool {
	if level > debugLevelThreshold {
		return ss.s.DebugEnabled()
	}
	return ss.s.InfoEnabled()
}

func (ss *scopeSink) Info(level int, msg string, keysAndVals ...any) {
	s := ss.labelled(keysAndVals)
	if level > debugLevelThreshold {
		s.Debug(strings.TrimSuffix(msg, "\n"))
		return
	}
	s.Info(strings.TrimSuffix(msg, "\n"))
}

func (ss *scopeSink) Error(err error, msg string, keysAndVals ...any) {
	if !ss.s.ErrorEnabled() {
		return
	}
	msg = strings.TrimSuffix(msg, "\n")
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	ss.labelled(keysAndVals).Error(msg)
}

func (ss *scopeSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &scopeSink{s: ss.s.WithLabels(keysAndValues...), name: ss.name}
}

func (ss *scopeSink) WithName(name string) logr.LogSink {
	if ss.name != "" {
		name = ss.name + "/" + name
	}
	return &scopeSink{s: ss.s, name: name}
}

func (ss *scopeSink) labelled(keysAndVals []any) *Scope {
	if ss.name != "" {
		keysAndVals = append([]any{"logger", ss.name}, keysAndVals...)
	}
	if len(keysAndVals) == 0 {
		return ss.s
	}
	return ss.s.WithLabels(keysAndVals...)
}
