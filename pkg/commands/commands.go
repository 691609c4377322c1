// Package commands wires the ncadmin command tree.
package commands

import (
	"github.com/spf13/cobra"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "ncadmin",
		Short: "Administrative client for the credit-note allocation tracker.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addGet(topLevel)
	addReport(topLevel)
	addVersion(topLevel)
}
