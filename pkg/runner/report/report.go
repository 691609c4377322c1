// Package report downloads the server-rendered PDF report.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/session"
)

type Report struct {
	Client *api.Client
	Guard  *session.Guard

	Filters api.Filters
	Output  string
	Details bool
}

func (r *Report) Do(ctx context.Context) error {
	if r.Guard == nil {
		return errors.New("can not report, no session guard")
	}
	if _, err := r.Guard.Bootstrap(ctx); err != nil {
		if errors.Is(err, api.ErrNotLoggedIn) {
			return errors.New(`nenhuma credencial armazenada; execute "ncadmin login"`)
		}
		return err
	}
	if r.Output == "" {
		return errors.New("can not report, no output file")
	}

	pdf, err := r.Client.ReportPDF(ctx, r.Filters, r.Details)
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.Output, pdf, 0o644); err != nil {
		return fmt.Errorf("salvar relatório: %w", err)
	}
	fmt.Printf("Relatório salvo em %s (%d bytes)\n", r.Output, len(pdf))
	return nil
}
