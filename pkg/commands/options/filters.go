// Package options holds the flag structs shared by the ncadmin subcommands:
// list filters, paging, report output, and the table/JSON switch.
package options

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/api"
)

// FilterOptions captures the server-side list filters shared by the credit
// note and encumbrance listings.
type FilterOptions struct {
	InternalPlan  string
	ExpenseNature string
	Status        string
	SectionID     int64
	CreditNoteID  int64
}

func AddNoteFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.InternalPlan, "plano-interno", "",
		"Filter by internal plan.")
	cmd.Flags().StringVar(&o.ExpenseNature, "nd", "",
		"Filter by expense nature code.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Filter by status (Ativa, Totalmente Empenhada, Vencida).")
	cmd.Flags().Int64Var(&o.SectionID, "secao", 0,
		"Filter by responsible section id.")
}

func AddEncumbranceFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().Int64Var(&o.CreditNoteID, "nota", 0,
		"Filter by owning credit note id.")
}

// Filters builds the query filter set, dropping zero values.
func (o *FilterOptions) Filters() api.Filters {
	f := api.Filters{}
	if o.InternalPlan != "" {
		f["plano_interno"] = o.InternalPlan
	}
	if o.ExpenseNature != "" {
		f["nd"] = o.ExpenseNature
	}
	if o.Status != "" {
		f["status"] = o.Status
	}
	if o.SectionID > 0 {
		f["secao_responsavel_id"] = strconv.FormatInt(o.SectionID, 10)
	}
	if o.CreditNoteID > 0 {
		f["nota_credito_id"] = strconv.FormatInt(o.CreditNoteID, 10)
	}
	return f
}

// PageOptions is the page/size pair passed through to the server.
type PageOptions struct {
	Page int
	Size int
}

func AddPageArgs(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().IntVar(&o.Page, "page", 1,
		"Page to fetch.")
	cmd.Flags().IntVar(&o.Size, "size", 0,
		"Page size; 0 uses the configured default.")
}
