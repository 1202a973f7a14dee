package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const AppName = "skillcli"

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}

	return filepath.Join(home, ".config", AppName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("ensure config dir: %w", err)
	}

	return dir, nil
}

// DataDir holds mutable state: the email database and tweet result files.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}

	return filepath.Join(home, ".local", "share", AppName), nil
}

func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("ensure data dir: %w", err)
	}

	return dir, nil
}

// StorePath resolves the email database location, preferring the
// configured override.
func StorePath(cfg Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}

	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "emails.db"), nil
}

// TweetsDir resolves where tweet fetch results land, preferring the
// configured override.
func TweetsDir(cfg Config) (string, error) {
	if cfg.Twitter.OutputDir != "" {
		if err := os.MkdirAll(cfg.Twitter.OutputDir, 0o700); err != nil {
			return "", fmt.Errorf("ensure tweets dir: %w", err)
		}
		return cfg.Twitter.OutputDir, nil
	}

	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}

	tweets := filepath.Join(dir, "tweets")
	if err := os.MkdirAll(tweets, 0o700); err != nil {
		return "", fmt.Errorf("ensure tweets dir: %w", err)
	}

	return tweets, nil
}

// KeyringDir is where the keyring "file" backend stores encrypted entries.
func KeyringDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "keyring"), nil
}

func EnsureKeyringDir() (string, error) {
	dir, err := KeyringDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("ensure keyring dir: %w", err)
	}

	return dir, nil
}
