package log

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const (
	DefaultScopeName          = "default"
	OverrideScopeName         = "all"
	defaultOutputLevel        = InfoLevel
	defaultStackTraceLevel    = NoneLevel
	defaultOutputPath         = "stdout"
	defaultErrorOutputPath    = "stderr"
	defaultRotationMaxAge     = 30
	defaultRotationMaxSize    = 100
	defaultRotationMaxBackups = 1000
)

type Level int

const (
	NoneLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

var levelToString = map[Level]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
	NoneLevel:  "none",
}

var stringToLevel = map[string]Level{
	"debug": DebugLevel,
	"info":  InfoLevel,
	"warn":  WarnLevel,
	"error": ErrorLevel,
	"fatal": FatalLevel,
	"none":  NoneLevel,
}

func (l Level) String() string {
	return levelToString[l]
}

// Options controls where log output goes and which scopes emit at which
// level. It is also an option handler: see Hierarchy.
type Options struct {
	Sinks

	JSONEncoding bool

	outputLevels     string
	logCallers       string
	stackTraceLevels string
}

// Sinks lists the log destinations.
type Sinks struct {
	OutputPaths      []string
	ErrorOutputPaths []string
	// Rotation, when set with a non-empty Path, tees output into a rotating
	// file.
	Rotation *Rotation
}

// Rotation configures the rotating log file.
type Rotation struct {
	Path       string
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

func DefaultOptions() *Options {
	return &Options{
		Sinks: Sinks{
			OutputPaths:      []string{defaultOutputPath},
			ErrorOutputPaths: []string{defaultErrorOutputPath},
		},
		outputLevels:     DefaultScopeName + ":" + levelToString[defaultOutputLevel],
		stackTraceLevels: DefaultScopeName + ":" + levelToString[defaultStackTraceLevel],
	}
}

func DefaultRotation() *Rotation {
	return &Rotation{
		MaxSize:    defaultRotationMaxSize,
		MaxAge:     defaultRotationMaxAge,
		MaxBackups: defaultRotationMaxBackups,
	}
}

func (o *Options) WithRotation(path string) *Options {
	r := DefaultRotation()
	r.Path = path
	o.Rotation = r
	return o
}

func (o *Options) SetOutputLevel(scope string, level Level) {
	o.outputLevels = setScopedLevel(o.outputLevels, scope, level)
}

func (o *Options) GetOutputLevel(scope string) (Level, error) {
	return getScopedLevel(o.outputLevels, scope)
}

func (o *Options) SetStackTraceLevel(scope string, level Level) {
	o.stackTraceLevels = setScopedLevel(o.stackTraceLevels, scope, level)
}

func (o *Options) GetStackTraceLevel(scope string) (Level, error) {
	return getScopedLevel(o.stackTraceLevels, scope)
}

func (o *Options) SetLogCallers(scope string, include bool) {
	var scopes []string
	for _, s := range strings.Split(o.logCallers, ",") {
		if s != "" && s != scope {
			scopes = append(scopes, s)
		}
	}
	if include {
		scopes = append(scopes, scope)
	}
	o.logCallers = strings.Join(scopes, ",")
}

func (o *Options) GetLogCallers(scope string) bool {
	for _, s := range strings.Split(o.logCallers, ",") {
		if s == scope {
			return true
		}
	}
	return false
}

// setScopedLevel replaces or appends the entry for scope in a
// "<scope>:<level>,..." list. An entry without a scope prefix stands for
// the default scope.
func setScopedLevel(list, scope string, level Level) string {
	sl := scope + ":" + levelToString[level]
	levels := strings.Split(list, ",")
	if list == "" {
		levels = nil
	}

	for i, ol := range levels {
		if matchesScope(ol, scope) {
			levels[i] = sl
			return strings.Join(levels, ",")
		}
	}
	return strings.Join(append(levels, sl), ",")
}

func getScopedLevel(list, scope string) (Level, error) {
	for _, ol := range strings.Split(list, ",") {
		if matchesScope(ol, scope) {
			_, l, err := convertScopedLevel(ol)
			return l, err
		}
	}
	return NoneLevel, fmt.Errorf("no level defined for scope '%s'", scope)
}

func matchesScope(entry, scope string) bool {
	if scope == DefaultScopeName && entry != "" && !strings.Contains(entry, ":") {
		return true
	}
	return strings.HasPrefix(entry, scope+":")
}

func convertScopedLevel(sl string) (string, Level, error) {
	var s string
	var l string

	pieces := strings.Split(sl, ":")
	if len(pieces) == 1 {
		s = DefaultScopeName
		l = pieces[0]
	} else if len(pieces) == 2 {
		s = pieces[0]
		l = pieces[1]
	} else {
		return "", NoneLevel, fmt.Errorf("invalid output level format '%s'", sl)
	}

	level, ok := stringToLevel[l]
	if !ok {
		return "", NoneLevel, fmt.Errorf("invalid output level '%s'", sl)
	}

	return s, level, nil
}

func (o *Options) AttachCobraFlags(cmd *cobra.Command) {
	o.AttachFlags(
		cmd.PersistentFlags().StringArrayVar,
		cmd.PersistentFlags().StringVar,
		cmd.PersistentFlags().IntVar,
		cmd.PersistentFlags().BoolVar)
}

// AttachFlags binds the options to command-line flags. Rotation is created
// with defaults if unset; it stays inactive until log_rotate names a file.
func (o *Options) AttachFlags(
	stringArrayVar func(p *[]string, name string, value []string, usage string),
	stringVar func(p *string, name string, value string, usage string),
	intVar func(p *int, name string, value int, usage string),
	boolVar func(p *bool, name string, value bool, usage string),
) {
	if o.Rotation == nil {
		o.Rotation = DefaultRotation()
	}

	stringArrayVar(&o.OutputPaths, "log_target", o.OutputPaths,
		"The set of paths where to output the log. This can be any path as well as the special values stdout and stderr")

	stringVar(&o.Rotation.Path, "log_rotate", o.Rotation.Path,
		"The path for the optional rotating log file")

	intVar(&o.Rotation.MaxAge, "log_rotate_max_age", o.Rotation.MaxAge,
		"The maximum age in days of a log file beyond which the file is rotated (0 indicates no limit)")

	intVar(&o.Rotation.MaxSize, "log_rotate_max_size", o.Rotation.MaxSize,
		"The maximum size in megabytes of a log file beyond which the file is rotated")

	intVar(&o.Rotation.MaxBackups, "log_rotate_max_backups", o.Rotation.MaxBackups,
		"The maximum number of log file backups to keep before older files are deleted (0 indicates no limit)")

	boolVar(&o.JSONEncoding, "log_as_json", o.JSONEncoding,
		"Whether to format output as JSON or in plain console-friendly format")

	levelListString := fmt.Sprintf("[%s, %s, %s, %s, %s, %s]",
		levelToString[DebugLevel],
		levelToString[InfoLevel],
		levelToString[WarnLevel],
		levelToString[ErrorLevel],
		levelToString[FatalLevel],
		levelToString[NoneLevel])

	allScopes := Scopes()
	keys := make([]string, 0, len(allScopes)+1)
	for name := range allScopes {
		keys = append(keys, name)
	}
	keys = append(keys, OverrideScopeName)
	sort.Strings(keys)
	s := strings.Join(keys, ", ")

	stringVar(&o.outputLevels, "log_output_level", o.outputLevels,
		fmt.Sprintf("Comma-separated minimum per-scope logging level of messages to output, in the form of "+
			"<scope>:<level>,<scope>:<level>,... where scope can be one of [%s] and level can be one of %s",
			s, levelListString))

	stringVar(&o.stackTraceLevels, "log_stacktrace_level", o.stackTraceLevels,
		fmt.Sprintf("Comma-separated minimum per-scope logging level at which stack traces are captured, in the form of "+
			"<scope>:<level>,<scope:level>,... where scope can be one of [%s] and level can be one of %s",
			s, levelListString))

	stringVar(&o.logCallers, "log_caller", o.logCallers,
		fmt.Sprintf("Comma-separated list of scopes for which to include caller information, scopes can be any of [%s]", s))

	// NOTE: we don't currently expose a command-line option to control ErrorOutputPaths since it
	// seems too esoteric.
}
