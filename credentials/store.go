package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keychain service name passwords are stored under
const DefaultService = "ziclient"

var (
	// ErrNotFound is returned when no password is stored for a username
	ErrNotFound = errors.New("no stored password")

	// ErrUsernameRequired is returned when a lookup has no username
	ErrUsernameRequired = errors.New("username is required")
)

// PasswordSource looks up a stored password for a username
type PasswordSource interface {
	Password(username string) (string, error)
}

// Store keeps ZoomInfo passwords in the system keychain
// (macOS Keychain, Secret Service on Linux, Windows Credential Manager).
type Store struct {
	service string
}

// NewStore creates a keychain store. An empty service uses DefaultService.
func NewStore(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

// Password returns the stored password for username
func (s *Store) Password(username string) (string, error) {
	if username == "" {
		return "", ErrUsernameRequired
	}

	value, err := keyring.Get(s.service, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w for %s", ErrNotFound, username)
		}
		return "", fmt.Errorf("keychain error: %w", err)
	}
	return value, nil
}

// Save stores password for username, replacing any previous value
func (s *Store) Save(username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return errors.New("password is required")
	}

	if err := keyring.Set(s.service, username, password); err != nil {
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}

// Delete removes the stored password for username
func (s *Store) Delete(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}

	if err := keyring.Delete(s.service, username); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w for %s", ErrNotFound, username)
		}
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}

// Resolve returns the configured password, falling back to source when the
// configured one is empty. A nil source disables the fallback.
func Resolve(username, configured string, source PasswordSource) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}
	if source == nil {
		return "", nil
	}
	return source.Password(username)
}
