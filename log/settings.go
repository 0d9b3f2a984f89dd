package log

import (
	"strings"

	"khetao.com/optkit/option"
)

const (
	OptionsTypeName  = "log.Options"
	SinksTypeName    = "log.Sinks"
	RotationTypeName = "log.Rotation"
)

func init() {
	option.DefaultRegistry.MustRegister(OptionsTypeName, func() option.Handler { return DefaultOptions() })
	option.DefaultRegistry.MustRegister(RotationTypeName, func() option.Handler { return DefaultRotation() })
}

type sinkHolder interface {
	SinkOptions() *Sinks
}

// SinkOptions gives the Sinks settings access to an embedding Options.
func (s *Sinks) SinkOptions() *Sinks { return s }

func joinPaths(paths []string) string { return strings.Join(paths, ",") }

func splitPaths(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, ","), nil
}

var sinksType = &option.Type{
	Name: SinksTypeName,
	Settings: []option.Setting{
		option.Text(option.Meta{
			Name:        "target",
			Description: "Comma-separated paths where to output the log.\nstdout and stderr are accepted.",
			Synopsis:    "-target <path,...>",
			Order:       option.At(0),
		},
			func(h sinkHolder) []string { return h.SinkOptions().OutputPaths },
			func(h sinkHolder, v []string) { h.SinkOptions().OutputPaths = v },
			joinPaths, splitPaths),
		option.Text(option.Meta{
			Name:        "error_target",
			Description: "Comma-separated paths for internal logger errors.",
			Synopsis:    "-error_target <path,...>",
			Order:       option.At(1),
		},
			func(h sinkHolder) []string { return h.SinkOptions().ErrorOutputPaths },
			func(h sinkHolder, v []string) { h.SinkOptions().ErrorOutputPaths = v },
			joinPaths, splitPaths),
		option.Nested(option.Meta{
			Name:        "rotate",
			Description: "Rotating log file, given as the log.Rotation type name and its options.",
			Synopsis:    `-rotate "log.Rotation -path <file> ..."`,
			Order:       option.At(2),
		}, nil,
			func(h sinkHolder) *Rotation { return h.SinkOptions().Rotation },
			func(h sinkHolder, v *Rotation) { h.SinkOptions().Rotation = v }),
	},
}

var optionsType = &option.Type{
	Name: OptionsTypeName,
	Settings: []option.Setting{
		option.Flag(option.Meta{
			Name:        "json",
			Description: "Format output as JSON instead of console-friendly text.",
			Synopsis:    "-json",
			Order:       option.At(0),
		},
			func(o *Options) bool { return o.JSONEncoding },
			func(o *Options, v bool) { o.JSONEncoding = v }),
		option.String(option.Meta{
			Name:        "output_level",
			Description: "Comma-separated minimum per-scope levels, <scope>:<level>,...",
			Synopsis:    "-output_level <levels>",
			Order:       option.At(1),
		},
			func(o *Options) string { return o.outputLevels },
			func(o *Options, v string) { o.outputLevels = v }),
		option.String(option.Meta{
			Name:        "stacktrace_level",
			Description: "Comma-separated per-scope levels at which stack traces are captured.",
			Synopsis:    "-stacktrace_level <levels>",
			Order:       option.At(2),
		},
			func(o *Options) string { return o.stackTraceLevels },
			func(o *Options, v string) { o.stackTraceLevels = v }),
		option.String(option.Meta{
			Name:        "caller",
			Description: "Comma-separated scopes that include caller information.",
			Synopsis:    "-caller <scopes>",
			Order:       option.At(3),
		},
			func(o *Options) string { return o.logCallers },
			func(o *Options, v string) { o.logCallers = v }),
	},
}

var rotationType = &option.Type{
	Name: RotationTypeName,
	Settings: []option.Setting{
		option.String(option.Meta{Name: "path", Description: "File to write.", Synopsis: "-path <file>", Order: option.At(0), Required: true},
			func(r *Rotation) string { return r.Path },
			func(r *Rotation, v string) { r.Path = v }),
		option.Int(option.Meta{Name: "max_size", Description: "Megabytes before the file is rotated.", Synopsis: "-max_size <mb>", Order: option.At(1)},
			func(r *Rotation) int { return r.MaxSize },
			func(r *Rotation, v int) { r.MaxSize = v }),
		option.Int(option.Meta{Name: "max_age", Description: "Days to keep rotated files (0 keeps them forever).", Synopsis: "-max_age <days>", Order: option.At(2)},
			func(r *Rotation) int { return r.MaxAge },
			func(r *Rotation, v int) { r.MaxAge = v }),
		option.Int(option.Meta{Name: "max_backups", Description: "Rotated files to keep (0 keeps all).", Synopsis: "-max_backups <n>", Order: option.At(3)},
			func(r *Rotation) int { return r.MaxBackups },
			func(r *Rotation, v int) { r.MaxBackups = v }),
	},
}

func (o *Options) Hierarchy() []*option.Type {
	return []*option.Type{optionsType, sinksType}
}

func (o *Options) ListOptions() []option.Option {
	return option.ListOptionsForHierarchy(o.Hierarchy(), nil)
}

func (o *Options) Options() ([]string, error) {
	return option.GetOptionsForHierarchy(o, nil)
}

func (o *Options) SetOptions(tokens []string) error {
	return option.SetOptionsForHierarchy(tokens, o, nil)
}

func (r *Rotation) Hierarchy() []*option.Type {
	return []*option.Type{rotationType}
}

func (r *Rotation) ListOptions() []option.Option {
	return option.ListOptions(rotationType)
}

func (r *Rotation) Options() ([]string, error) {
	return option.GetOptions(r, rotationType)
}

func (r *Rotation) SetOptions(tokens []string) error {
	return option.SetOptions(tokens, r, rotationType)
}
