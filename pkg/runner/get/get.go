// Package get lists server collections on the command line.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/printers"
	"github.com/salcops/ncadmin/pkg/session"
)

// Resource aliases accepted by "ncadmin get".
const (
	ResourceCreditNotes  = "notas"
	ResourceEncumbrances = "empenhos"
	ResourceSections     = "secoes"
	ResourceUsers        = "usuarios"
	ResourceAudit        = "auditoria"
)

// Resources lists the accepted nouns in display order.
func Resources() []string {
	return []string{
		ResourceCreditNotes,
		ResourceEncumbrances,
		ResourceSections,
		ResourceUsers,
		ResourceAudit,
	}
}

type Get struct {
	Client *api.Client
	Guard  *session.Guard

	Resource string
	Filters  api.Filters
	Page     int
	Size     int

	JSON   bool
	ShowID bool
}

func (g *Get) Do(ctx context.Context) error {
	if g.Guard == nil {
		return errors.New("can not get, no session guard")
	}
	if _, err := g.Guard.Bootstrap(ctx); err != nil {
		if errors.Is(err, api.ErrNotLoggedIn) {
			return errors.New(`nenhuma credencial armazenada; execute "ncadmin login"`)
		}
		return err
	}

	page := g.Page
	if page < 1 {
		page = 1
	}
	size := g.Size
	if size < 1 {
		size = 10
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID}
	fmt.Println("")

	switch g.Resource {
	case ResourceCreditNotes:
		env, err := g.Client.ListCreditNotes(ctx, g.Filters, page, size)
		if err != nil {
			return err
		}
		if g.JSON {
			return g.encode(env)
		}
		pp.CreditNotes(env)

	case ResourceEncumbrances:
		env, err := g.Client.ListEncumbrances(ctx, g.Filters, page, size)
		if err != nil {
			return err
		}
		if g.JSON {
			return g.encode(env)
		}
		pp.Encumbrances(env)

	case ResourceSections:
		sections, err := g.Client.ListSections(ctx)
		if err != nil {
			return err
		}
		if g.JSON {
			return g.encode(sections)
		}
		pp.Sections(sections)

	case ResourceUsers:
		users, err := g.Client.ListUsers(ctx)
		if err != nil {
			return err
		}
		if g.JSON {
			return g.encode(users)
		}
		pp.Users(users)

	case ResourceAudit:
		entries, err := g.Client.AuditLogs(ctx, (page-1)*size, size)
		if err != nil {
			return err
		}
		if g.JSON {
			return g.encode(entries)
		}
		pp.AuditLogs(entries)

	default:
		return fmt.Errorf("recurso desconhecido %q", g.Resource)
	}
	return nil
}

func (g *Get) encode(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
