// Package seed implements the read-only credential store. Users are loaded
// once from a YAML file (or the built-in dev seed) and held in an immutable
// in-memory map for the process lifetime.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/oatfile/filedrop/internal/filedrop/domain"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/cryptox"
	"gopkg.in/yaml.v3"
)

// userEntry is one record in the seed file. Exactly one of password_hash
// (argon2 PHC string) or password (hashed at load, dev convenience) must be
// set.
type userEntry struct {
	Username     string `yaml:"username"`
	FullName     string `yaml:"full_name"`
	PasswordHash string `yaml:"password_hash"`
	Password     string `yaml:"password"`
	Disabled     bool   `yaml:"disabled"`
}

type seedFile struct {
	Users []userEntry `yaml:"users"`
}

// Store holds the seeded users. It implements store.Users and is safe for
// concurrent use because it is never written after construction.
type Store struct {
	users map[string]domain.User
}

// LoadFile reads a YAML seed file and builds the credential store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("seed: %s contains no users", path)
	}

	return build(f.Users)
}

// DevSeed returns the built-in development store with the john_doe demo
// account. Only used when no seed file is configured.
func DevSeed() (*Store, error) {
	return build([]userEntry{
		{Username: "john_doe", FullName: "John Doe", Password: "password123"},
		{Username: "jane_doe", FullName: "Jane Doe", Password: "password456", Disabled: true},
	})
}

func build(entries []userEntry) (*Store, error) {
	users := make(map[string]domain.User, len(entries))
	for _, e := range entries {
		if e.Username == "" {
			return nil, fmt.Errorf("seed: user with empty username")
		}
		if _, dup := users[e.Username]; dup {
			return nil, fmt.Errorf("seed: duplicate username %q", e.Username)
		}

		hash := e.PasswordHash
		if hash == "" {
			if e.Password == "" {
				return nil, fmt.Errorf("seed: user %q has neither password_hash nor password", e.Username)
			}
			var err error
			hash, err = cryptox.HashPassword(e.Password)
			if err != nil {
				return nil, fmt.Errorf("seed: hash password for %q: %w", e.Username, err)
			}
		}

		users[e.Username] = domain.User{
			Username:     e.Username,
			FullName:     e.FullName,
			PasswordHash: hash,
			Disabled:     e.Disabled,
		}
	}

	return &Store{users: users}, nil
}

// GetUserByUsername looks up a user by exact, case-sensitive username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

// Len reports the number of seeded users.
func (s *Store) Len() int { return len(s.users) }
