package options

import (
	"github.com/spf13/cobra"
)

// ReportOptions shapes the consolidated PDF download.
type ReportOptions struct {
	Output  string
	Details bool
}

func AddReportArgs(cmd *cobra.Command, o *ReportOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"File to write the PDF to; empty uses the configured default.")
	cmd.Flags().BoolVar(&o.Details, "detalhes", true,
		"Include the encumbrance detail lines.")
}
