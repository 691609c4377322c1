// Package ui boots the interactive terminal client.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/config"
	"github.com/salcops/ncadmin/pkg/session"
	"github.com/salcops/ncadmin/pkg/tui/app"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

type UI struct {
	Client *api.Client
	Guard  *session.Guard
	Config *config.Config
}

func (u *UI) Do(ctx context.Context) error {
	if u.Guard == nil {
		return errors.New("can not start ui, no session guard")
	}
	if _, err := u.Guard.Bootstrap(ctx); err != nil {
		if errors.Is(err, api.ErrNotLoggedIn) {
			return errors.New(`nenhuma credencial armazenada; execute "ncadmin login"`)
		}
		return err
	}

	err := app.Run(app.Deps{
		Client:       u.Client,
		Guard:        u.Guard,
		Theme:        theme.New(),
		PageSize:     u.Config.PageSize,
		AllowPartial: u.Config.StatementPartial,
		ReportFile:   u.Config.ReportFile,
	})
	if err != nil {
		return err
	}

	if u.Guard.State() == session.Expired {
		fmt.Println(`Sessão expirada; execute "ncadmin login" para entrar novamente.`)
	}
	return nil
}
