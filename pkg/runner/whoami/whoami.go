// Package whoami reports the identity behind the stored credential.
package whoami

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

type Whoami struct {
	Guard  *session.Guard
	Client *api.Client
	JSON   bool
}

func (w *Whoami) Do(ctx context.Context) error {
	if w.Guard == nil {
		return errors.New("can not resolve identity, no session guard")
	}
	identity, err := w.Guard.Bootstrap(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNotLoggedIn) {
			return errors.New(`nenhuma credencial armazenada; execute "ncadmin login"`)
		}
		return err
	}

	if w.JSON {
		return json.NewEncoder(os.Stdout).Encode(identity)
	}
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Identity(identity, w.Client.BaseURL())
	return nil
}
