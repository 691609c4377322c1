package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/commands/options"
	"github.com/salcops/ncadmin/pkg/runner/whoami"
)

func addWhoami(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "show the identity behind the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			w := whoami.Whoami{Guard: e.Guard, Client: e.Client, JSON: oo.JSON}
			return oo.HandleError(w.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
