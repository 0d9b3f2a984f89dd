package globalflag

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"khetao.com/optkit/option"
)

func AddGlobalFlags(fs *pflag.FlagSet, name string) {
	fs.BoolP("help", "h", false, fmt.Sprintf("help for %s", name))
}

// AddOptions defines a long flag on fs for each option: a bool flag for
// options without arguments, a string flag otherwise. Options whose name is
// already defined on fs are skipped and returned.
func AddOptions(fs *pflag.FlagSet, opts []option.Option) []option.Option {
	var skipped []option.Option
	for _, o := range opts {
		if fs.Lookup(o.Name()) != nil {
			skipped = append(skipped, o)
			continue
		}
		usage := flagUsage(o)
		if o.NumArguments() == 0 {
			fs.Bool(o.Name(), false, usage)
		} else {
			fs.String(o.Name(), "", usage)
		}
	}
	return skipped
}

// Tokens turns the flags of opts that were set on fs back into an option
// token vector, in the order of opts. A bool flag set to false is dropped.
func Tokens(fs *pflag.FlagSet, opts []option.Option) []string {
	var out []string
	for _, o := range opts {
		f := fs.Lookup(o.Name())
		if f == nil || !f.Changed {
			continue
		}
		if o.NumArguments() == 0 {
			if f.Value.String() == "true" {
				out = append(out, o.Flag())
			}
			continue
		}
		out = append(out, o.Flag(), f.Value.String())
	}
	return out
}

func flagUsage(o option.Option) string {
	lines := strings.Split(strings.TrimPrefix(o.Description(), "\t"), "\n\t")
	return strings.Join(lines, " ")
}
