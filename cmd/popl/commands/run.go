package commands

import (
	"github.com/emdiet/popl/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-m] <script|module> [args...]",
		Short: "Run a Python script or module with the project interpreter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, _ := cmd.Flags().GetBool("module")
			return c.app.Run(cmd.Context(), app.RunOptions{
				Module: module,
				Target: args[0],
				Args:   args[1:],
			})
		},
	}
	cmd.Flags().BoolP("module", "m", false, "Run as a module (python -m)")
	// Everything after the target belongs to the script.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
