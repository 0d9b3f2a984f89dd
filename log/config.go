// Copyright 2017 Istio Authors

package log

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "scope",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stack",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeTime:     formatDate,
}

type patchTable struct {
	write       func(ent zapcore.Entry, fields []zapcore.Field) error
	sync        func() error
	exitProcess func(code int)
	errorSink   zapcore.WriteSyncer
	close       func() error
}

var (
	// function table that can be replaced by tests
	funcs = &atomic.Value{}
	// controls whether all output is JSON or CLI style. This makes it easier to query how the zap encoder is configured
	// vs. reading it's internal state.
	useJSON atomic.Value
)

func init() {
	if err := Configure(DefaultOptions()); err != nil {
		panic(fmt.Sprintf("log: default configuration: %v", err))
	}
}

func formatDate(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000000Z"))
}

// prepZap builds the core writing to every configured sink, plus the sink
// for the logger's own errors.
func prepZap(options *Options) (zapcore.Core, zapcore.WriteSyncer, func() error, error) {
	var enc zapcore.Encoder
	if options.JSONEncoding {
		enc = zapcore.NewJSONEncoder(defaultEncoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(defaultEncoderConfig)
	}

	errSink, closeErrSink, err := zap.Open(options.ErrorOutputPaths...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open error output: %w", err)
	}
	closers := []func() error{func() error { closeErrSink(); return nil }}

	var sinks []zapcore.WriteSyncer
	if len(options.OutputPaths) > 0 {
		out, closeOut, err := zap.Open(options.OutputPaths...)
		if err != nil {
			closeErrSink()
			return nil, nil, nil, fmt.Errorf("open output: %w", err)
		}
		sinks = append(sinks, out)
		closers = append(closers, func() error { closeOut(); return nil })
	}

	if r := options.Rotation; r != nil && r.Path != "" {
		rotater := &lumberjack.Logger{
			Filename:   r.Path,
			MaxSize:    r.MaxSize,
			MaxBackups: r.MaxBackups,
			MaxAge:     r.MaxAge,
		}
		sinks = append(sinks, zapcore.AddSync(rotater))
		closers = append(closers, rotater.Close)
	}

	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), zap.NewAtomicLevelAt(zapcore.DebugLevel))
	closeAll := func() error {
		var firstErr error
		for _, c := range closers {
			if err := c(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return core, errSink, closeAll, nil
}

// Configure replaces the global logging state with one built from options.
// Scopes registered later start at their defaults.
func Configure(options *Options) error {
	core, errSink, closeSinks, err := prepZap(options)
	if err != nil {
		return err
	}

	if err := updateScopes(options); err != nil {
		_ = closeSinks()
		return err
	}

	pt := patchTable{
		write: func(ent zapcore.Entry, fields []zapcore.Field) error {
			err := core.Write(ent, fields)
			if ent.Level == zapcore.FatalLevel {
				funcs.Load().(patchTable).exitProcess(1)
			}
			return err
		},
		sync:        core.Sync,
		exitProcess: os.Exit,
		errorSink:   errSink,
		close:       closeSinks,
	}

	if prev, ok := funcs.Load().(patchTable); ok && prev.close != nil {
		_ = prev.sync()
		_ = prev.close()
	}
	funcs.Store(pt)
	useJSON.Store(options.JSONEncoding)
	return nil
}

// Sync flushes buffered log entries.
func Sync() error {
	return funcs.Load().(patchTable).sync()
}

// Close flushes and releases the configured sinks.
func Close() error {
	pt := funcs.Load().(patchTable)
	_ = pt.sync()
	return pt.close()
}

func updateScopes(options *Options) error {
	// snapshot what's there
	allScopes := Scopes()

	// update the output levels of all listed scopes
	if err := processLevels(allScopes, options.outputLevels, func(s *Scope, l Level) { s.SetOutputLevel(l) }); err != nil {
		return err
	}

	// update the stack tracing levels of all listed scopes
	if err := processLevels(allScopes, options.stackTraceLevels, func(s *Scope, l Level) { s.SetStackTraceLevel(l) }); err != nil {
		return err
	}

	// update the caller location setting of all listed scopes
	for _, s := range strings.Split(options.logCallers, ",") {
		if s == "" {
			continue
		}

		if s == OverrideScopeName {
			// ignore everything else and just apply the override value
			for _, scope := range allScopes {
				scope.SetLogCallers(true)
			}
			return nil
		}

		if scope, ok := allScopes[s]; ok {
			scope.SetLogCallers(true)
		}
	}

	return nil
}

func processLevels(allScopes map[string]*Scope, arg string, setter func(*Scope, Level)) error {
	for _, sl := range strings.Split(arg, ",") {
		if sl == "" {
			continue
		}
		s, l, err := convertScopedLevel(sl)
		if err != nil {
			return err
		}

		if scope, ok := allScopes[s]; ok {
			setter(scope, l)
		} else if s == OverrideScopeName {
			// override replaces everything
			for _, scope := range allScopes {
				setter(scope, l)
			}
			return nil
		} else {
			return fmt.Errorf("unknown scope '%s' specified", s)
		}
	}
	return nil
}
