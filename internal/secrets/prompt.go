package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptySecretInput = errors.New("empty secret input")

// GetOrPrompt returns the named secret, prompting on the terminal and
// storing the entered value when the secret does not exist yet. Input is
// read without echo. Without a TTY a missing secret is an error.
func GetOrPrompt(key string) ([]byte, error) {
	data, err := GetSecret(key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrSecretNotFound) {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("secret %q not found and no TTY to prompt for it", key)
	}

	fmt.Fprintf(os.Stderr, "Secret %q not found.\nEnter value (input hidden): ", key)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read secret from terminal: %w", err)
	}

	value := strings.TrimSpace(string(raw))
	if value == "" {
		return nil, errEmptySecretInput
	}

	if err := SetSecret(key, []byte(value)); err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Stored %q in the system keyring.\n", key)

	return []byte(value), nil
}
