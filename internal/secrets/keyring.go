package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups coldreach's secrets in the OS keychain.
const KeyringService = "coldreach"

// Keychain reads and writes API keys in the OS keychain.
type Keychain struct {
	service string
}

// NewKeychain returns a Keychain scoped to KeyringService.
func NewKeychain() *Keychain {
	return &Keychain{service: KeyringService}
}

// Get returns the secret stored for account.
func (k *Keychain) Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	return keyring.Get(k.service, account)
}

// Set stores secret for account, replacing any previous value.
func (k *Keychain) Set(account, secret string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(k.service, account, strings.TrimSpace(secret))
}

// Delete removes the secret stored for account.
func (k *Keychain) Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(k.service, account)
}
