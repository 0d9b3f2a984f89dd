package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"khetao.com/optkit/cli/globalflag"
	"khetao.com/optkit/option"
	"khetao.com/optkit/structured"
	"khetao.com/optkit/tokens"
)

// Description is the structured form of describe's output.
type Description struct {
	Scheme   string          `json:"scheme"`
	Defaults []string        `json:"defaults"`
	Options  []option.Record `json:"options"`
}

// runE logs a failing command's error with its structured detail before
// handing it back to cobra.
func runE(f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := f(cmd, args)
		if err != nil {
			scope.Error(classify(err), cmd.CommandPath()+" failed")
		}
		return err
	}
}

// resolve maps a scheme to a registered name: the name itself, or the only
// name it is a dot-separated suffix of.
func (a *App) resolve(scheme string) (string, error) {
	names := a.registry.Match(scheme)
	for _, n := range names {
		if n == scheme {
			return n, nil
		}
	}
	switch len(names) {
	case 0:
		return "", &option.UnknownTypeError{Name: scheme, Err: option.ErrNotRegistered}
	case 1:
		scope.Debugf("resolved %s to %s", scheme, names[0])
		return names[0], nil
	default:
		return "", &AmbiguousSchemeError{Suffix: scheme, Candidates: names}
	}
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [suffix]",
		Short: "List registered schemes, optionally only those ending in suffix",
		Args:  cobra.MaximumNArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			names := a.registry.Names()
			if len(args) == 1 {
				names = a.registry.Match(args[0])
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		}),
	}
}

func (a *App) describeCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "describe <scheme>",
		Short: "Show the options a scheme accepts and its default settings",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			name, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			h, err := a.registry.New(name)
			if err != nil {
				return err
			}
			defaults, err := h.Options()
			if err != nil {
				return err
			}
			opts := h.ListOptions()
			out := cmd.OutOrStdout()

			switch output {
			case "":
				_, _ = fmt.Fprintf(out, "%s %s\n\n", name, tokens.Join(defaults))
				_, _ = fmt.Fprint(out, option.Usage(opts))
			case "yaml", "json":
				d := Description{Scheme: name, Defaults: defaults, Options: option.Records(opts)}
				var b []byte
				if output == "yaml" {
					b, err = yaml.Marshal(&d)
				} else {
					b, err = json.MarshalIndent(&d, "", "  ")
					b = append(b, '\n')
				}
				if err != nil {
					return err
				}
				_, _ = out.Write(b)
			default:
				return errors.New(`--output must be 'yaml' or 'json'`)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "One of 'yaml' or 'json'.")
	return cmd
}

func isHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "-h" || args[0] == "--help")
}

func (a *App) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <scheme> [option tokens...]",
		Short: "Apply option tokens to a new instance of scheme and print its canonical options",
		Long: "Apply option tokens to a new instance of scheme and print its canonical options.\n" +
			"Every argument after the scheme is an option token, e.g. -depth 5.",

		DisableFlagParsing: true,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || isHelp(args) {
				return cmd.Help()
			}
			name, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			h, err := a.registry.ForName(name, args[1:])
			if err != nil {
				return err
			}
			return printOptions(cmd, h)
		}),
	}
}

func (a *App) setCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "set <scheme> [--option=value...]",
		Short:              "Like parse, but options are given as GNU-style flags",
		DisableFlagParsing: true,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || isHelp(args) {
				return cmd.Help()
			}
			name, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			h, err := a.registry.New(name)
			if err != nil {
				return err
			}

			opts := h.ListOptions()
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			fs.SetOutput(cmd.ErrOrStderr())
			globalflag.AddGlobalFlags(fs, name)
			for _, o := range globalflag.AddOptions(fs, opts) {
				scope.Warnf("option %s of %s is hidden by a global flag", o.Name(), name)
			}
			if err := fs.Parse(args[1:]); err != nil {
				return structured.NewErr(errBadOptions, err)
			}
			if help, _ := fs.GetBool("help"); help {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Usage of %s:\n%s", name, fs.FlagUsages())
				return nil
			}

			if err := h.SetOptions(globalflag.Tokens(fs, opts)); err != nil {
				return err
			}
			return printOptions(cmd, h)
		}),
	}
}

func printOptions(cmd *cobra.Command, h option.Handler) error {
	opts, err := h.Options()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tokens.Join(opts))
	return nil
}
