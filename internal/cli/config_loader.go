package cli

import (
	"errors"
	"os"

	"skillcli/internal/config"
	"skillcli/internal/secrets"
)

const imageKeySecret = "image-api-key"

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if password, ok := os.LookupEnv("SKILLCLI_AUTH_PASSWORD"); ok {
		cfg.Auth.Password = password
		cfg.Auth.PasswordSource = "env"
		return cfg, nil
	}

	if cfg.Auth.Password != "" {
		cfg.Auth.PasswordSource = "config"
		return cfg, nil
	}

	if cfg.Auth.Username == "" {
		return cfg, nil
	}

	password, err := secrets.GetPassword(cfg.Auth.Username)
	if err != nil {
		if errors.Is(err, secrets.ErrSecretNotFound) {
			return cfg, nil
		}
		return cfg, err
	}

	cfg.Auth.Password = password
	cfg.Auth.PasswordSource = "keyring"
	return cfg, nil
}

// loadImageConfig resolves the image API key from the keyring when the
// config and environment carry none.
func loadImageConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}

	if cfg.Image.APIKey != "" {
		return cfg, nil
	}

	key, err := secrets.GetSecret(imageKeySecret)
	if err != nil {
		if errors.Is(err, secrets.ErrSecretNotFound) {
			return cfg, nil
		}
		return cfg, err
	}

	cfg.Image.APIKey = string(key)
	return cfg, nil
}
