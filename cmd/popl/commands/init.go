package commands

import (
	"github.com/emdiet/popl/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the virtual environment, popl.json and requirements.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doImport, _ := cmd.Flags().GetBool("import")
			return c.app.Init(cmd.Context(), app.InitOptions{Import: doImport})
		},
	}
	cmd.Flags().Bool("import", false, "Import requirements from requirements.txt into popl.json")
	return cmd
}
