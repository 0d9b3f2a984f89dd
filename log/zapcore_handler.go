package log

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"khetao.com/optkit/structured"
)

var (
	toLevel = map[zapcore.Level]Level{
		zapcore.FatalLevel: FatalLevel,
		zapcore.ErrorLevel: ErrorLevel,
		zapcore.WarnLevel:  WarnLevel,
		zapcore.InfoLevel:  InfoLevel,
		zapcore.DebugLevel: DebugLevel,
	}
	toZapLevel = map[Level]zapcore.Level{
		FatalLevel: zapcore.FatalLevel,
		ErrorLevel: zapcore.ErrorLevel,
		WarnLevel:  zapcore.WarnLevel,
		InfoLevel:  zapcore.InfoLevel,
		DebugLevel: zapcore.DebugLevel,
	}
)

func init() {
	registerDefaultHandler(ZapLogHandlerCallbackFunc)
}

// ZapLogHandlerCallbackFunc turns a scope entry into a zap entry. With JSON
// output structured details and labels become fields; otherwise they are
// appended to the message as key=value pairs.
func ZapLogHandlerCallbackFunc(
	level Level,
	scope *Scope,
	ie *structured.Error,
	msg string,
) {
	var fields []zapcore.Field
	if useJSON.Load().(bool) {
		if ie != nil {
			fields = appendNotEmptyField(fields, "message", msg)
			// Unlike zap, don't leave the message in CLI format.
			msg = ""
			for _, kv := range ie.Fields() {
				fields = appendNotEmptyField(fields, kv[0], kv[1])
			}
		}
		for _, k := range scope.labelKeys {
			fields = append(fields, zap.Any(k, scope.labels[k]))
		}
	} else {
		sb := &strings.Builder{}
		sb.WriteString(msg)
		if ie != nil || len(scope.labelKeys) > 0 {
			sb.WriteString("\t")
		}
		if ie != nil {
			for _, kv := range ie.Fields() {
				appendNotEmptyString(sb, kv[0], kv[1])
			}
		}
		pairs := make([]string, 0, len(scope.labelKeys))
		for _, k := range scope.labelKeys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, scope.labels[k]))
		}
		sb.WriteString(strings.Join(pairs, " "))
		msg = strings.TrimRight(sb.String(), " \t")
	}
	emit(scope, toZapLevel[level], msg, fields)
}

func appendNotEmptyField(fields []zapcore.Field, key, value string) []zapcore.Field {
	if key == "" || value == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}

func appendNotEmptyString(sb *strings.Builder, key, value string) {
	if key == "" || value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("%s=%v ", key, value))
}

// callerSkipOffset covers emit, the handler, callHandlers, Scope.log and the
// exported Scope method.
const callerSkipOffset = 5

func dumpStack(level zapcore.Level, scope *Scope) bool {
	thresh := toLevel[level]
	if scope != defaultScope {
		thresh = ErrorLevel
		if level == zapcore.FatalLevel {
			thresh = FatalLevel
		}
	}
	return scope.GetStackTraceLevel() >= thresh
}

func emit(scope *Scope, level zapcore.Level, msg string, fields []zapcore.Field) {
	e := zapcore.Entry{
		Message:    msg,
		Level:      level,
		Time:       time.Now(),
		LoggerName: scope.nameToEmit,
	}

	if scope.GetLogCallers() {
		e.Caller = zapcore.NewEntryCaller(runtime.Caller(scope.callerSkip + callerSkipOffset))
	}

	if dumpStack(level, scope) {
		e.Stack = zap.Stack("").String
	}

	pt := funcs.Load().(patchTable)
	if pt.write != nil {
		if err := pt.write(e, fields); err != nil {
			_, _ = fmt.Fprintf(pt.errorSink, "%v log write error: %v\n", time.Now(), err)
			_ = pt.errorSink.Sync()
		}
	}
}
