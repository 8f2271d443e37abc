package config

import (
	"os"
	"strings"
)

// KeySource looks up a stored API key by account name.
type KeySource interface {
	Get(account string) (string, error)
}

// KeyringAccount is the keychain account the LLM API key is stored under.
const KeyringAccount = "groq"

// ResolveAPIKey fills APIKey when it is empty, trying the APIKeyEnv variable
// and then keys (which may be nil). It reports where the key came from, or ""
// when none was found. A missing key is left for NewClient to reject.
func (c *LLMConfig) ResolveAPIKey(keys KeySource) string {
	if strings.TrimSpace(c.APIKey) != "" {
		return "config"
	}
	if c.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(c.APIKeyEnv)); v != "" {
			c.APIKey = v
			return "env"
		}
	}
	if keys != nil {
		if v, err := keys.Get(KeyringAccount); err == nil && strings.TrimSpace(v) != "" {
			c.APIKey = strings.TrimSpace(v)
			return "keychain"
		}
	}
	return ""
}

// MaskedKey returns the API key with all but its last four characters hidden.
func (c LLMConfig) MaskedKey() string {
	k := strings.TrimSpace(c.APIKey)
	if k == "" {
		return "(none)"
	}
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}
