package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name under which credentials are stored
const KeyringService = AppName

// CredentialStore stores provider credentials outside the config file
type CredentialStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Credentials is the store consulted by Load; tests replace it
var Credentials CredentialStore = NewKeyringCredentialStore()

// KeyringCredentialStore keeps credentials in the OS keyring
// (Keychain, Credential Manager, Secret Service).
type KeyringCredentialStore struct {
	service string
}

// NewKeyringCredentialStore creates a store scoped to KeyringService
func NewKeyringCredentialStore() *KeyringCredentialStore {
	return &KeyringCredentialStore{service: KeyringService}
}

// Set stores a credential
func (s *KeyringCredentialStore) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}
	if value == "" {
		return fmt.Errorf("credential value for %s cannot be empty", key)
	}
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Get retrieves a credential
func (s *KeyringCredentialStore) Get(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("credential key cannot be empty")
	}
	value, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("credential not found: %s", key)
		}
		return "", fmt.Errorf("failed to retrieve credential: %w", err)
	}
	return value, nil
}

// Delete removes a credential
func (s *KeyringCredentialStore) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}
	if err := keyring.Delete(s.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("credential not found: %s", key)
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
