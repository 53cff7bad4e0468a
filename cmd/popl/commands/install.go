package commands

import (
	"github.com/emdiet/popl/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [specifiers...] [-- installer args...]",
		Short: "Install packages, or resync the project when none are given",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			global, _ := cmd.Flags().GetBool("global")

			specifiers, passthrough := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				specifiers, passthrough = args[:dash], args[dash:]
			}

			return c.app.Install(cmd.Context(), app.InstallOptions{
				Specifiers:  specifiers,
				Global:      global,
				Passthrough: passthrough,
			})
		},
	}
	cmd.Flags().Bool("global", false, "Install into the ambient interpreter instead of the project")
	return cmd
}
