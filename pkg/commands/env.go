package commands

import (
	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/config"
	"github.com/salcops/ncadmin/pkg/credstore"
	"github.com/salcops/ncadmin/pkg/session"
)

// env is the assembled client environment every command runs against.
type env struct {
	Config *config.Config
	Creds  *credstore.Store
	Client *api.Client
	Guard  *session.Guard
}

// loadEnv builds config, credential store, API client, and session guard. The
// guard's expiry hook is wired into the client so any 401 clears credentials
// exactly once.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	creds, err := credstore.Open(cfg.CredentialPath)
	if err != nil {
		return nil, err
	}

	var guard *session.Guard
	client, err := api.New(cfg.ServerURL,
		api.WithToken(creds.Token),
		api.WithTimeout(cfg.Timeout),
		api.WithExpiredHandler(func() {
			if guard != nil {
				guard.HandleExpired()
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	guard = session.New(client, creds)

	return &env{Config: cfg, Creds: creds, Client: client, Guard: guard}, nil
}
