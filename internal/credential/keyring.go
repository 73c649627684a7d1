// Package credential stores secrets in the system keyring so API keys never
// live in the config file.
package credential

import (
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "taskpad"

// KeyOpenAI is the keyring entry holding the extraction service API key.
const KeyOpenAI = "openai_api_key"

// EnvOpenAI overrides the keyring when set.
const EnvOpenAI = "TASKPAD_OPENAI_API_KEY"

// openKeyring returns a configured keyring instance.
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
		FileDir:                  "~/.config/taskpad/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("taskpad-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// OpenAIAPIKey resolves the extraction service key, preferring the
// environment variable over the keyring. An empty result means the primary
// extraction path is unavailable and capture runs on the local splitter.
func OpenAIAPIKey() string {
	if key := os.Getenv(EnvOpenAI); key != "" {
		return key
	}
	key, err := Get(KeyOpenAI)
	if err != nil {
		return ""
	}
	return key
}
