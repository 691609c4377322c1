package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salcops/ncadmin/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	username := ""

	cmd := &cobra.Command{
		Use:   "login",
		Short: "authenticate and store the bearer token",
		Example: `
ncadmin login
ncadmin login --username maria
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			l := login.Login{Guard: e.Guard, Username: username}
			return l.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to authenticate as.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "remove the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			l := login.Logout{Guard: e.Guard}
			return l.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
