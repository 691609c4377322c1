package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
ncadmin ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			i := ui.UI{Client: e.Client, Guard: e.Guard, Config: e.Config}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
