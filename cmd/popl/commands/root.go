// Package commands implements the CLI commands for popl.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/emdiet/popl/internal/app"
	"github.com/emdiet/popl/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for popl.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, opts app.InitOptions) error
	Install(ctx context.Context, opts app.InstallOptions) error
	Run(ctx context.Context, opts app.RunOptions) error
	Exec(ctx context.Context, tokens []string, opts app.ExecOptions) error
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "popl",
		Short:         "Project-scoped Python package management",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON lines")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if enabled, _ := cmd.Flags().GetBool("json"); enabled {
			a.SetJSON(true)
		}
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
