// Package credstore persists the opaque authentication context (bearer token
// and the username it belongs to) between invocations.
package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

// Store is a diskv-backed credential store. Values are plain files under the
// base path, mode 0700 on the directory.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// DefaultPath resolves ~/.ncadmin/credentials.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".ncadmin", "credentials"), nil
}

// Open creates a store rooted at basePath, creating the directory as needed.
// An empty basePath falls back to DefaultPath.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		var err error
		basePath, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("create credential dir: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 4 * 1024,
		}),
		basePath: basePath,
	}, nil
}

// Token returns the stored bearer token, or "" when not logged in.
func (s *Store) Token() string {
	return s.read(keyToken)
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.write(keyToken, token)
}

// Username returns the username the token was issued to.
func (s *Store) Username() string {
	return s.read(keyUsername)
}

// SetUsername records the username alongside the token.
func (s *Store) SetUsername(name string) error {
	return s.write(keyUsername, name)
}

// Clear drops every stored credential. Missing keys are not an error.
func (s *Store) Clear() error {
	var firstErr error
	for _, key := range []string{keyToken, keyUsername} {
		if !s.d.Has(key) {
			continue
		}
		if err := s.d.Erase(key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("erase %s: %w", key, err)
		}
	}
	return firstErr
}

// Path reports where credentials live, for diagnostics.
func (s *Store) Path() string { return s.basePath }

func (s *Store) read(key string) string {
	val, err := s.d.Read(key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(val))
}

func (s *Store) write(key, value string) error {
	if strings.TrimSpace(value) == "" {
		if s.d.Has(key) {
			return s.d.Erase(key)
		}
		return nil
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
