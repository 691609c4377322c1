package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/commands/options"
	"github.com/salcops/ncadmin/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	ro := &options.ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "download the PDF report of credit notes",
		Example: `
ncadmin report
ncadmin report --status Ativa -o ativas.pdf
ncadmin report --plano-interno ABC123 --detalhes=false
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			output := ro.Output
			if output == "" {
				output = e.Config.ReportFile
			}
			r := report.Report{
				Client:  e.Client,
				Guard:   e.Guard,
				Filters: fo.Filters(),
				Output:  output,
				Details: ro.Details,
			}
			return r.Do(context.Background())
		},
	}

	options.AddNoteFilterArgs(cmd, fo)
	options.AddReportArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
