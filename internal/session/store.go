// Package session persists the Monarch Money session in the OS keyring
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
// One session per installation, under a single fixed key. The bootstrapper
// writes it; the dispatcher reads it once at startup.
package session

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

const (
	// Service is the keyring service name
	Service = "monarch-mcp"

	// User is the keyring account under which the session is stored
	User = "session"
)

// Store reads and writes the cached session.
type Store struct {
	service string
	user    string
}

// NewStore creates a store bound to the fixed keyring key.
func NewStore() *Store {
	return &Store{service: Service, user: User}
}

// Save overwrites the stored session. SavedAt is stamped here.
func (s *Store) Save(session *monarch.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("refusing to store an empty session")
	}

	session.SavedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	if err := keyring.Set(s.service, s.user, string(data)); err != nil {
		return errors.Wrap(err, "failed to write session to keyring")
	}

	return nil
}

// Load returns the stored session, or (nil, nil) when none is stored or the
// stored value cannot be decoded. A corrupt entry is indistinguishable from
// an absent one for callers: both leave the dispatcher unauthenticated.
func (s *Store) Load() (*monarch.Session, error) {
	data, err := keyring.Get(s.service, s.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read session from keyring")
	}

	var session monarch.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, nil
	}

	if session.Token == "" {
		return nil, nil
	}

	return &session, nil
}

// Delete removes the stored session. Missing entries are not an error.
func (s *Store) Delete() error {
	err := keyring.Delete(s.service, s.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrap(err, "failed to delete session from keyring")
	}
	return nil
}
