// Package printers renders API entities for the non-interactive commands.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/pagination"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Print(title)
	switch count {
	case 1:
		_, _ = c.Println(" - 1 registro")
	default:
		_, _ = c.Printf(" - %d registros\n", count)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Println(" nenhum registro")
}

// PageFooter prints the pagination position below a listing.
func (pp *PrettyPrint) PageFooter(total, page, size int) {
	w := pagination.Compute(total, page, size)
	f := color.New(color.Faint)
	_, _ = f.Printf("página %d/%d · %d-%d de %d\n", page, w.TotalPages, w.StartItem, w.EndItem, total)
}

func (pp *PrettyPrint) CreditNotes(page api.Page[api.CreditNote]) {
	pp.TitleWithCount("Notas de Crédito", page.Total)
	if len(page.Results) == 0 {
		pp.none()
		return
	}
	table := pp.table()
	if pp.ShowID {
		table.AddRow("ID", "NÚMERO", "VALOR", "SALDO", "PI", "ND", "PRAZO", "SEÇÃO", "STATUS")
	} else {
		table.AddRow("NÚMERO", "VALOR", "SALDO", "PI", "ND", "PRAZO", "SEÇÃO", "STATUS")
	}
	for _, n := range page.Results {
		cols := []interface{}{
			n.Number,
			format.Currency(n.Amount),
			format.Currency(n.AvailableBalance),
			n.InternalPlan,
			n.ExpenseNature,
			format.Date(n.CommitmentDeadline.Time),
			n.SectionName(),
			statusText(n.Status),
		}
		if pp.ShowID {
			cols = append([]interface{}{n.ID}, cols...)
		}
		table.AddRow(cols...)
	}
	fmt.Println(table)
	pp.PageFooter(page.Total, page.Page, page.Size)
}

func (pp *PrettyPrint) Encumbrances(page api.Page[api.Encumbrance]) {
	pp.TitleWithCount("Empenhos", page.Total)
	if len(page.Results) == 0 {
		pp.none()
		return
	}
	table := pp.table()
	if pp.ShowID {
		table.AddRow("ID", "NÚMERO", "VALOR", "DATA", "NC", "SEÇÃO", "OBSERVAÇÃO")
	} else {
		table.AddRow("NÚMERO", "VALOR", "DATA", "NC", "SEÇÃO", "OBSERVAÇÃO")
	}
	for _, e := range page.Results {
		cols := []interface{}{
			e.Number,
			format.Currency(e.Amount),
			format.Date(e.Date.Time),
			e.NoteNumber(),
			e.SectionName(),
			e.Note,
		}
		if pp.ShowID {
			cols = append([]interface{}{e.ID}, cols...)
		}
		table.AddRow(cols...)
	}
	fmt.Println(table)
	pp.PageFooter(page.Total, page.Page, page.Size)
}

func (pp *PrettyPrint) Sections(sections []api.Section) {
	pp.TitleWithCount("Seções", len(sections))
	if len(sections) == 0 {
		pp.none()
		return
	}
	table := pp.table()
	table.AddRow("ID", "NOME")
	for _, s := range sections {
		table.AddRow(s.ID, s.Name)
	}
	fmt.Println(table)
}

func (pp *PrettyPrint) Users(users []api.User) {
	pp.TitleWithCount("Usuários", len(users))
	if len(users) == 0 {
		pp.none()
		return
	}
	table := pp.table()
	table.AddRow("ID", "USUÁRIO", "E-MAIL", "PERFIL")
	for _, u := range users {
		table.AddRow(u.ID, u.Username, u.Email, string(u.Role))
	}
	fmt.Println(table)
}

func (pp *PrettyPrint) AuditLogs(entries []api.AuditLogEntry) {
	pp.TitleWithCount("Auditoria", len(entries))
	if len(entries) == 0 {
		pp.none()
		return
	}
	table := pp.table()
	table.AddRow("QUANDO", "USUÁRIO", "AÇÃO", "DETALHES")
	for _, e := range entries {
		table.AddRow(format.DateTime(e.Timestamp.Time), e.Username, e.Action, e.Details)
	}
	fmt.Println(table)
}

func (pp *PrettyPrint) Identity(id api.Identity, server string) {
	t := color.New(color.Bold)
	f := color.New(color.Faint)
	_, _ = t.Println(id.Username)
	fmt.Printf("  e-mail: %s\n", id.Email)
	fmt.Printf("  perfil: %s\n", id.Role)
	_, _ = f.Printf("  servidor: %s\n", server)
}

func (pp *PrettyPrint) table() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 40
	return table
}

func statusText(s api.Status) string {
	switch s {
	case api.StatusActive:
		return color.GreenString(string(s))
	case api.StatusExpired:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}
