package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	IMAP     IMAPConfig     `mapstructure:"imap" yaml:"imap"`
	SMTP     SMTPConfig     `mapstructure:"smtp" yaml:"smtp"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Ollama   OllamaConfig   `mapstructure:"ollama" yaml:"ollama"`
	Image    ImageConfig    `mapstructure:"image" yaml:"image"`
	Twitter  TwitterConfig  `mapstructure:"twitter" yaml:"twitter"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

type IMAPConfig struct {
	Host               string `mapstructure:"host" yaml:"host"`
	Port               int    `mapstructure:"port" yaml:"port"`
	TLS                bool   `mapstructure:"tls" yaml:"tls"`
	StartTLS           bool   `mapstructure:"starttls" yaml:"starttls"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

type SMTPConfig struct {
	Host               string `mapstructure:"host" yaml:"host"`
	Port               int    `mapstructure:"port" yaml:"port"`
	TLS                bool   `mapstructure:"tls" yaml:"tls"`
	StartTLS           bool   `mapstructure:"starttls" yaml:"starttls"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

type AuthConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	// PasswordSource records where the password was resolved from
	// (env, config, keyring). Display only, never persisted.
	PasswordSource string `mapstructure:"-" yaml:"-"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type OllamaConfig struct {
	Host  string `mapstructure:"host" yaml:"host"`
	Model string `mapstructure:"model" yaml:"model"`
}

type ImageConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string `mapstructure:"model" yaml:"model"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
}

type TwitterConfig struct {
	Influencers string `mapstructure:"influencers" yaml:"influencers"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
}

type DefaultsConfig struct {
	Folder     string `mapstructure:"folder" yaml:"folder"`
	FetchLimit int    `mapstructure:"fetch_limit" yaml:"fetch_limit"`
	SyncLimit  int    `mapstructure:"sync_limit" yaml:"sync_limit"`
}

func DefaultConfig() Config {
	return Config{
		IMAP: IMAPConfig{
			Port:     993,
			TLS:      true,
			StartTLS: false,
		},
		SMTP: SMTPConfig{
			Port:     587,
			TLS:      false,
			StartTLS: true,
		},
		Ollama: OllamaConfig{
			Host:  "http://localhost:11434",
			Model: "glm-4.7-flash:bf16",
		},
		Image: ImageConfig{
			Model: "gpt-image-1",
		},
		Defaults: DefaultsConfig{
			Folder:     "INBOX",
			FetchLimit: 5,
			SyncLimit:  50,
		},
	}
}

func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SKILLCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		// With an explicit config file, a missing file surfaces as an
		// *fs.PathError rather than viper's not-found type. Either way a
		// fresh machine runs on defaults and env overrides.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	ApplyProviderDefaults(&cfg)

	return cfg, nil
}

func Save(cfg Config) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return path, nil
}

func Redact(cfg Config) Config {
	masked := cfg
	if masked.Auth.Password != "" {
		masked.Auth.Password = "****"
	}
	if masked.Image.APIKey != "" {
		masked.Image.APIKey = "****"
	}
	return masked
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("imap.port", cfg.IMAP.Port)
	v.SetDefault("imap.tls", cfg.IMAP.TLS)
	v.SetDefault("imap.starttls", cfg.IMAP.StartTLS)
	v.SetDefault("imap.insecure_skip_verify", cfg.IMAP.InsecureSkipVerify)

	v.SetDefault("smtp.port", cfg.SMTP.Port)
	v.SetDefault("smtp.tls", cfg.SMTP.TLS)
	v.SetDefault("smtp.starttls", cfg.SMTP.StartTLS)
	v.SetDefault("smtp.insecure_skip_verify", cfg.SMTP.InsecureSkipVerify)

	// Keys without file values still need to exist for env overrides to
	// survive Unmarshal.
	v.SetDefault("auth.username", cfg.Auth.Username)
	v.SetDefault("auth.password", cfg.Auth.Password)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("ollama.host", cfg.Ollama.Host)
	v.SetDefault("ollama.model", cfg.Ollama.Model)

	v.SetDefault("image.endpoint", cfg.Image.Endpoint)
	v.SetDefault("image.model", cfg.Image.Model)
	v.SetDefault("image.api_key", cfg.Image.APIKey)

	v.SetDefault("twitter.influencers", cfg.Twitter.Influencers)
	v.SetDefault("twitter.output_dir", cfg.Twitter.OutputDir)

	v.SetDefault("defaults.folder", cfg.Defaults.Folder)
	v.SetDefault("defaults.fetch_limit", cfg.Defaults.FetchLimit)
	v.SetDefault("defaults.sync_limit", cfg.Defaults.SyncLimit)
}

func Validate(cfg Config) error {
	if err := ValidateIMAP(cfg); err != nil {
		return err
	}
	if err := ValidateSMTP(cfg); err != nil {
		return err
	}
	return nil
}

func ValidateIMAP(cfg Config) error {
	if cfg.IMAP.Host == "" {
		return fmt.Errorf("imap.host is required")
	}
	if cfg.Auth.Username == "" {
		return fmt.Errorf("auth.username is required")
	}
	if cfg.Auth.Password == "" {
		return fmt.Errorf("auth.password is required")
	}
	return nil
}

func ValidateSMTP(cfg Config) error {
	if cfg.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required")
	}
	if cfg.Auth.Username == "" {
		return fmt.Errorf("auth.username is required")
	}
	if cfg.Auth.Password == "" {
		return fmt.Errorf("auth.password is required")
	}
	return nil
}

func ValidateImage(cfg Config) error {
	if cfg.Image.Endpoint == "" {
		return fmt.Errorf("image.endpoint is required")
	}
	return nil
}

func ValidateOllama(cfg Config) error {
	if cfg.Ollama.Host == "" {
		return fmt.Errorf("ollama.host is required")
	}
	if cfg.Ollama.Model == "" {
		return fmt.Errorf("ollama.model is required")
	}
	return nil
}
