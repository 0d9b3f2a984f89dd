package log

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"khetao.com/optkit/structured"
)

// Scope is a named logger with its own output level, stack trace level and
// caller setting.
type Scope struct {
	name        string
	nameToEmit  string
	description string
	callerSkip  int

	outputLevel     atomic.Value
	stackTraceLevel atomic.Value
	logCallers      atomic.Value

	labelKeys []string
	labels    map[string]any
}

var (
	scopes = make(map[string]*Scope)
	lock   sync.RWMutex

	defaultHandlers []scopeHandlerCallbackFunc
	// Write lock should only be taken during program startup.
	defaultHandlersMu sync.RWMutex
)

type scopeHandlerCallbackFunc func(
	level Level,
	scope *Scope,
	ie *structured.Error,
	msg string)

func registerDefaultHandler(callback scopeHandlerCallbackFunc) {
	defaultHandlersMu.Lock()
	defer defaultHandlersMu.Unlock()
	defaultHandlers = append(defaultHandlers, callback)
}

// RegisterScope returns the scope called name, creating it at info level if
// it does not exist yet.
func RegisterScope(name string, description string, callerSkip int) *Scope {
	if strings.ContainsAny(name, ":,.") {
		panic(fmt.Sprintf("scope name %s is invalid, it cannot contain colons, commas, or periods", name))
	}

	lock.Lock()
	defer lock.Unlock()

	s, ok := scopes[name]
	if !ok {
		s = &Scope{
			name:        name,
			description: description,
			callerSkip:  callerSkip,
			labels:      make(map[string]any),
		}
		s.SetOutputLevel(InfoLevel)
		s.SetStackTraceLevel(NoneLevel)
		s.SetLogCallers(false)

		if name != DefaultScopeName {
			s.nameToEmit = name
		}

		scopes[name] = s
	}

	return s
}

func FindScope(scope string) *Scope {
	lock.RLock()
	defer lock.RUnlock()

	return scopes[scope]
}

func Scopes() map[string]*Scope {
	lock.RLock()
	defer lock.RUnlock()

	s := make(map[string]*Scope, len(scopes))
	for k, v := range scopes {
		s[k] = v
	}

	return s
}

// log emits fmt.Sprint of args. A leading *structured.Error is split off
// and carried as structured fields.
func (s *Scope) log(level Level, args []any) {
	if s.GetOutputLevel() < level {
		return
	}
	ie, rest := splitStructured(args)
	s.callHandlers(level, ie, fmt.Sprint(rest...))
}

// logf treats the first argument after an optional *structured.Error as the
// format string.
func (s *Scope) logf(level Level, args []any) {
	if s.GetOutputLevel() < level {
		return
	}
	ie, rest := splitStructured(args)
	if len(rest) == 0 {
		s.callHandlers(level, ie, "")
		return
	}
	msg := fmt.Sprint(rest[0])
	if len(rest) > 1 {
		msg = fmt.Sprintf(msg, rest[1:]...)
	}
	s.callHandlers(level, ie, msg)
}

func (s *Scope) Fatal(args ...any) { s.log(FatalLevel, args) }
func (s *Scope) Fatalf(args ...any) { s.logf(FatalLevel, args) }
func (s *Scope) FatalEnabled() bool { return s.GetOutputLevel() >= FatalLevel }
func (s *Scope) Error(args ...any) { s.log(ErrorLevel, args) }
func (s *Scope) Errorf(args ...any) { s.logf(ErrorLevel, args) }
func (s *Scope) ErrorEnabled() bool { return s.GetOutputLevel() >= ErrorLevel }
func (s *Scope) Warn(args ...any) { s.log(WarnLevel, args) }
func (s *Scope) Warnf(args ...any) { s.logf(WarnLevel, args) }
func (s *Scope) WarnEnabled() bool { return s.GetOutputLevel() >= WarnLevel }
func (s *Scope) Info(args ...any) { s.log(InfoLevel, args) }
func (s *Scope) Infof(args ...any) { s.logf(InfoLevel, args) }
func (s *Scope) InfoEnabled() bool { return s.GetOutputLevel() >= InfoLevel }
func (s *Scope) Debug(args ...any) { s.log(DebugLevel, args) }
func (s *Scope) Debugf(args ...any) { s.logf(DebugLevel, args) }
func (s *Scope) DebugEnabled() bool { return s.GetOutputLevel() >= DebugLevel }
func (s *Scope) Name() string { return s.name }
func (s *Scope) Description() string { return s.description }

func (s *Scope) SetOutputLevel(l Level) {
	s.outputLevel.Store(l)
}

func (s *Scope) GetOutputLevel() Level {
	return s.outputLevel.Load().(Level)
}

func (s *Scope) SetStackTraceLevel(l Level) {
	s.stackTraceLevel.Store(l)
}

func (s *Scope) GetStackTraceLevel() Level {
	return s.stackTraceLevel.Load().(Level)
}

func (s *Scope) SetLogCallers(logCallers bool) {
	s.logCallers.Store(logCallers)
}

func (s *Scope) GetLogCallers() bool {
	return s.logCallers.Load().(bool)
}

// WithLabels returns a copy of s that adds the key/value pairs of kvlist to
// every entry.
func (s *Scope) WithLabels(kvlist ...any) *Scope {
	out := &Scope{
		name:        s.name,
		nameToEmit:  s.nameToEmit,
		description: s.description,
		callerSkip:  s.callerSkip,
		labelKeys:   append([]string(nil), s.labelKeys...),
		labels:      make(map[string]any, len(s.labels)+len(kvlist)/2),
	}
	out.SetOutputLevel(s.GetOutputLevel())
	out.SetStackTraceLevel(s.GetStackTraceLevel())
	out.SetLogCallers(s.GetLogCallers())
	for k, v := range s.labels {
		out.labels[k] = v
	}

	if len(kvlist)%2 != 0 {
		out.addLabel("WithLabels error", fmt.Sprintf("even number of parameters required, got %d", len(kvlist)))
		return out
	}
	for i := 0; i < len(kvlist); i += 2 {
		key, ok := kvlist[i].(string)
		if !ok {
			out.addLabel("WithLabels error", fmt.Sprintf("label name %v must be a string, got %T ", kvlist[i], kvlist[i]))
			return out
		}
		out.addLabel(key, kvlist[i+1])
	}
	return out
}

func (s *Scope) addLabel(key string, value any) {
	if _, ok := s.labels[key]; !ok {
		s.labelKeys = append(s.labelKeys, key)
	}
	s.labels[key] = value
}

func (s *Scope) callHandlers(severity Level, ie *structured.Error, msg string) {
	defaultHandlersMu.RLock()
	defer defaultHandlersMu.RUnlock()
	for _, h := range defaultHandlers {
		h(severity, s, ie, msg)
	}
}

func splitStructured(args []any) (*structured.Error, []any) {
	if len(args) == 0 {
		return nil, args
	}
	if ie, ok := args[0].(*structured.Error); ok {
		return ie, args[1:]
	}
	return nil, args
}
