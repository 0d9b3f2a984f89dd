package app

import (
	"github.com/spf13/cobra"

	"khetao.com/optkit/log"
	"khetao.com/optkit/option"
	"khetao.com/optkit/version"
)

var (
	scope         = log.RegisterScope("app", "Command execution.", 0)
	registryScope = log.RegisterScope("registry", "Option handler registry.", 0)
)

// App is a command-line front end over an option registry.
type App struct {
	name        string
	description string
	registry    *option.Registry
	logOptions  *log.Options
}

type Option func(*App)

func WithDescription(description string) Option {
	return func(a *App) {
		a.description = description
	}
}

// WithRegistry replaces option.DefaultRegistry as the source of schemes.
func WithRegistry(r *option.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}

// WithLogOptions sets the logging defaults the persistent log flags start
// from.
func WithLogOptions(o *log.Options) Option {
	return func(a *App) {
		a.logOptions = o
	}
}

func New(name string, opts ...Option) *App {
	a := &App{
		name:       name,
		registry:   option.DefaultRegistry,
		logOptions: log.DefaultOptions(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Command builds the root command. Each call returns a fresh tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:          a.name,
		Short:        a.description,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Configure(a.logOptions); err != nil {
				return err
			}
			a.registry.SetLogger(log.NewLogrAdapter(registryScope))
			return nil
		},
	}
	a.logOptions.AttachCobraFlags(root)

	root.AddCommand(
		a.listCommand(),
		a.describeCommand(),
		a.parseCommand(),
		a.setCommand(),
		version.CobraCommand(),
	)
	return root
}

// Run executes the command tree with the process arguments.
func (a *App) Run() error {
	return a.Command().Execute()
}
