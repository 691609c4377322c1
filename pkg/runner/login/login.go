// Package login implements the interactive credential exchange.
package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/session"
)

type Login struct {
	Guard *session.Guard

	// Username skips the prompt when set from a flag.
	Username string

	// In defaults to stdin; tests swap it.
	In io.Reader
}

func (l *Login) Do(ctx context.Context) error {
	if l.Guard == nil {
		return errors.New("can not log in, no session guard")
	}

	username := strings.TrimSpace(l.Username)
	if username == "" {
		var err error
		username, err = l.prompt("Usuário: ")
		if err != nil {
			return err
		}
	}
	if username == "" {
		return errors.New("usuário é obrigatório")
	}

	password, err := l.promptPassword("Senha: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("senha é obrigatória")
	}

	identity, err := l.Guard.Login(ctx, username, password)
	if err != nil {
		var re *api.RequestError
		if errors.As(err, &re) && re.Status == 401 {
			return errors.New("usuário ou senha incorretos")
		}
		return err
	}

	g := color.New(color.FgGreen)
	_, _ = g.Printf("Autenticado como %s (%s)\n", identity.Username, identity.Role)
	return nil
}

func (l *Login) prompt(label string) (string, error) {
	fmt.Print(label)
	in := l.In
	if in == nil {
		in = os.Stdin
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal, falling back to
// a plain line read for pipes.
func (l *Login) promptPassword(label string) (string, error) {
	if l.In == nil && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print(label)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return l.prompt(label)
}

// Logout clears the stored credential.
type Logout struct {
	Guard *session.Guard
}

func (l *Logout) Do(_ context.Context) error {
	if l.Guard == nil {
		return errors.New("can not log out, no session guard")
	}
	l.Guard.Logout()
	fmt.Println("Credencial removida.")
	return nil
}
