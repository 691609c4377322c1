package forms

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// NewUser builds the account creation dialog (administration area).
func NewUser(th theme.Theme, client *api.Client) *Model {
	roles := []string{string(api.RoleOperator), string(api.RoleAdministrator)}

	return New(th, Config{
		ID:    events.ComponentID("form-user"),
		Title: "Novo Usuário",
		Fields: []Field{
			{Key: "username", Label: "Usuário", Placeholder: "fulano"},
			{Key: "email", Label: "E-mail", Placeholder: "fulano@exemplo.mil.br"},
			{Key: "password", Label: "Senha"},
			{Key: "role", Label: "Perfil", Options: roles},
		},
		Validate: func(v Values) error {
			if err := required(v, "username", "Usuário"); err != nil {
				return err
			}
			if !strings.Contains(v["email"], "@") {
				return errors.New("e-mail inválido")
			}
			return passwordStrength(v["password"])
		},
		Submit: func(ctx context.Context, v Values) error {
			_, err := client.CreateUser(ctx, api.UserInput{
				Username: v["username"],
				Email:    v["email"],
				Password: v["password"],
				Role:     api.Role(v["role"]),
			})
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-user", api.CollectionUsers, events.ChangeCreate),
				events.StatusCmd("Usuário %s criado", v["username"]),
			)
		},
	})
}
