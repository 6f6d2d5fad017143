package accounts

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "atlassify"

// CredentialStore holds API credentials keyed by account id, separate from
// the account rows so tokens never reach the database.
type CredentialStore interface {
	Get(accountID string) (string, error)
	Set(accountID, secret string) error
	Delete(accountID string) error
}

// keyringStore is the OS-keyring-backed credential store.
type keyringStore struct{}

// NewKeyringStore returns a credential store backed by the system keyring.
func NewKeyringStore() CredentialStore {
	return keyringStore{}
}

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/atlassify/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("atlassify-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (keyringStore) Get(accountID string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(accountID)
	if err != nil {
		return "", fmt.Errorf("getting credential for %q: %w", accountID, err)
	}
	return string(item.Data), nil
}

func (keyringStore) Set(accountID, secret string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: accountID, Data: []byte(secret)}); err != nil {
		return fmt.Errorf("setting credential for %q: %w", accountID, err)
	}
	return nil
}

func (keyringStore) Delete(accountID string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	if err := ring.Remove(accountID); err != nil {
		return fmt.Errorf("deleting credential for %q: %w", accountID, err)
	}
	return nil
}

// arrayStore is an in-memory credential store backed by the keyring
// package's test backend. Used by tests and available for ad-hoc runs where
// no OS keyring exists.
type arrayStore struct {
	ring keyring.Keyring
}

// NewArrayStore returns an in-memory credential store.
func NewArrayStore() CredentialStore {
	return &arrayStore{ring: keyring.NewArrayKeyring(nil)}
}

func (s *arrayStore) Get(accountID string) (string, error) {
	item, err := s.ring.Get(accountID)
	if err != nil {
		return "", fmt.Errorf("getting credential for %q: %w", accountID, err)
	}
	return string(item.Data), nil
}

func (s *arrayStore) Set(accountID, secret string) error {
	return s.ring.Set(keyring.Item{Key: accountID, Data: []byte(secret)})
}

func (s *arrayStore) Delete(accountID string) error {
	return s.ring.Remove(accountID)
}
