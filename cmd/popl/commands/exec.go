package commands

import (
	"github.com/emdiet/popl/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [--shell] <command> [args...]",
		Short: "Execute a command with the project environment activated",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, _ := cmd.Flags().GetBool("shell")
			return c.app.Exec(cmd.Context(), args, app.ExecOptions{Shell: shell})
		},
	}
	cmd.Flags().Bool("shell", false, "Run the command line through the configured shell")
	cmd.Flags().SetInterspersed(false)
	return cmd
}
