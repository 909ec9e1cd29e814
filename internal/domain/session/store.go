package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoSession is returned when no session has been stored yet.
var ErrNoSession = errors.New("no stored session, run: clusterview auth login")

// Store persists the session as a JSON file under the client config
// directory. There is no expiry on the client side; a revoked credential
// is only discovered when the gateway rejects a request.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Set persists the credential pair, replacing any previous session.
func (s *Store) Set(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("session requires both email and password")
	}

	data, err := json.MarshalIndent(Session{Email: email, Password: password}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get returns the stored session, or ErrNoSession when absent.
func (s *Store) Get() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	if !sess.IsAuthenticated() {
		return Session{}, ErrNoSession
	}

	return sess, nil
}

// Clear removes the stored session. Clearing an absent session is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
