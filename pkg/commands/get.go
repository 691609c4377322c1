package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/commands/options"
	"github.com/salcops/ncadmin/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	fo := &options.FilterOptions{}
	po := &options.PageOptions{}
	showID := false

	long := strings.Builder{}
	long.WriteString("List a server collection.\n\nResources:\n")
	for _, r := range get.Resources() {
		long.WriteString("  " + r + "\n")
	}

	cmd := &cobra.Command{
		Use:   "get [resource]",
		Short: "list a server collection",
		Long:  long.String(),
		Example: `
ncadmin get notas
ncadmin get notas --status Ativa --secao 3
ncadmin get empenhos --nota 12 --page 2
ncadmin get secoes --json
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: get.Resources(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			size := po.Size
			if size < 1 {
				size = e.Config.PageSize
			}
			s := get.Get{
				Client:   e.Client,
				Guard:    e.Guard,
				Resource: args[0],
				Filters:  fo.Filters(),
				Page:     po.Page,
				Size:     size,
				JSON:     oo.JSON,
				ShowID:   showID,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddNoteFilterArgs(cmd, fo)
	options.AddEncumbranceFilterArgs(cmd, fo)
	options.AddPageArgs(cmd, po)
	cmd.Flags().BoolVarP(&showID, "show-id", "k", false, "Show entity ids.")

	topLevel.AddCommand(cmd)
}
