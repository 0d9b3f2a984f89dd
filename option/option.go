package option

import (
	"strings"
)

// Option describes one configurable setting as it appears on a command line.
type Option struct {
	description  string
	name         string
	numArguments int
	synopsis     string
}

// New creates an option record. Discovery normalizes the inputs before
// calling it; New itself stores them as given.
func New(description, name string, numArguments int, synopsis string) Option {
	return Option{
		description:  description,
		name:         name,
		numArguments: numArguments,
		synopsis:     synopsis,
	}
}

// Description returns the tab-indented help text.
func (o Option) Description() string {
	return o.description
}

// Name returns the flag name without its leading dash.
func (o Option) Name() string {
	return o.name
}

// NumArguments is 0 for flags and 1 for value-bearing options.
func (o Option) NumArguments() int {
	return o.numArguments
}

// Synopsis returns the usage fragment, always starting with a dash.
func (o Option) Synopsis() string {
	return o.synopsis
}

// Flag returns the token matching this option on a command line.
func (o Option) Flag() string {
	return "-" + o.name
}

func (o Option) String() string {
	return o.synopsis
}

// Record is the exported shape of an Option, used for yaml/json output.
type Record struct {
	Name         string `json:"name"`
	Synopsis     string `json:"synopsis"`
	Description  string `json:"description"`
	NumArguments int    `json:"numArguments"`
}

// Records converts opts for structured output. Descriptions lose their
// indentation.
func Records(opts []Option) []Record {
	out := make([]Record, 0, len(opts))
	for _, o := range opts {
		out = append(out, Record{
			Name:         o.name,
			Synopsis:     o.synopsis,
			Description:  strings.TrimPrefix(strings.ReplaceAll(o.description, "\n\t", "\n"), "\t"),
			NumArguments: o.numArguments,
		})
	}
	return out
}

// Usage renders opts as help text: the synopsis on its own line followed by
// the description.
func Usage(opts []Option) string {
	sb := &strings.Builder{}
	for _, o := range opts {
		sb.WriteString(o.synopsis)
		sb.WriteString("\n")
		sb.WriteString(o.description)
		sb.WriteString("\n")
		sb.WriteString("\n")
	}
	return sb.String()
}

func normalize(m Meta, numArguments int) Option {
	description := m.Description
	if !strings.HasPrefix(description, "\t") {
		description = "\t" + description
	}
	description = strings.ReplaceAll(description, "\n", "\n\t")

	synopsis := m.Synopsis
	if !strings.HasPrefix(synopsis, "-") {
		synopsis = "-" + synopsis
	}

	return New(description, flagName(m.Name), numArguments, synopsis)
}

func flagName(name string) string {
	return strings.TrimPrefix(name, "-")
}
