// Package accounts persists authenticated Atlassian accounts. Account rows
// live in SQLite; credentials live in the OS keyring.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/logging"
)

var (
	// ErrAccountNotFound indicates that an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates the account is already logged in.
	ErrAccountExists = errors.New("account already exists")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	name       TEXT NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);`

// Store is the SQLite-backed account store.
type Store struct {
	db    *sql.DB
	creds CredentialStore
}

// DefaultDBPath returns the account database location.
// ATLASSIFY_CONFIG_DIR overrides the default user config dir.
func DefaultDBPath() (string, error) {
	if dir := os.Getenv("ATLASSIFY_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "accounts.db"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config dir: %w", err)
	}
	return filepath.Join(dir, "atlassify", "accounts.db"), nil
}

// NewStore opens (or creates) the account database at the provided path.
func NewStore(dbPath string, creds CredentialStore) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("account store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("account store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("account store: open db: %w", err)
	}

	store := &Store{db: db, creds: creds}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("account store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("account store: create schema: %w", err)
	}
	return nil
}

// Add stores a new account and its credential.
func (s *Store) Add(ctx context.Context, account domain.Account) error {
	if account.ID == "" {
		return fmt.Errorf("account store: account id cannot be empty")
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM accounts WHERE id = ?", account.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("account store: check account: %w", err)
	}
	if exists > 0 {
		return ErrAccountExists
	}

	if err := s.creds.Set(account.ID, account.Credential); err != nil {
		return fmt.Errorf("account store: store credential: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, username, name, avatar_url) VALUES (?, ?, ?, ?)",
		account.ID, account.Username, account.Name, account.AvatarURL)
	if err != nil {
		return fmt.Errorf("account store: add account: %w", err)
	}
	return nil
}

// Remove deletes an account and its credential.
func (s *Store) Remove(ctx context.Context, accountID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", accountID)
	if err != nil {
		return fmt.Errorf("account store: remove account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("account store: remove account: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	if err := s.creds.Delete(accountID); err != nil {
		// The row is gone; a stale keyring entry is not fatal.
		logging.Warn("failed to delete credential", "account", accountID, "error", err)
	}
	return nil
}

// List returns all accounts with credentials loaded from the keyring.
// An account whose credential cannot be loaded is returned with an empty
// credential; the fetch boundary classifies the resulting rejection.
func (s *Store) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, name, avatar_url FROM accounts ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("account store: list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Name, &a.AvatarURL); err != nil {
			return nil, fmt.Errorf("account store: scan account: %w", err)
		}
		cred, err := s.creds.Get(a.ID)
		if err != nil {
			logging.Warn("failed to load credential", "account", a.ID, "error", err)
		}
		a.Credential = cred
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("account store: list accounts: %w", err)
	}
	return accounts, nil
}

// Reset removes every account and credential.
func (s *Store) Reset(ctx context.Context) error {
	accounts, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if err := s.creds.Delete(a.ID); err != nil {
			logging.Warn("failed to delete credential", "account", a.ID, "error", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
		return fmt.Errorf("account store: reset accounts: %w", err)
	}
	return nil
}
