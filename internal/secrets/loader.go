package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobscout"

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value and Keyring.
	File string
	// Keyring is an account name looked up in the OS keychain under
	// KeyringService. Consulted when File is unset.
	Keyring string
}

// Load returns the resolved secret value from the provided source. Resolution
// order is File, then Keyring, then Value. The returned secret is always
// trimmed. An error is returned when no source yields a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if account := strings.TrimSpace(src.Keyring); account != "" {
		value, err := keyring.Get(KeyringService, account)
		if err == nil {
			if secret := strings.TrimSpace(value); secret != "" {
				return secret, nil
			}
		}
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// Store writes a secret to the OS keychain under the given account name.
func Store(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return fmt.Errorf("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

// Delete removes a secret from the OS keychain.
func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return fmt.Errorf("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
