package cli

import (
	"fmt"

	"skillcli/internal/config"
	"skillcli/internal/secrets"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication and config setup",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthSecretCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		imapHost     string
		imapPort     int
		imapTLS      bool
		imapStartTLS bool
		imapInsecure bool

		smtpHost     string
		smtpPort     int
		smtpTLS      bool
		smtpStartTLS bool
		smtpInsecure bool

		username string
		password string

		storePath     string
		ollamaHost    string
		ollamaModel   string
		imageEndpoint string
		imageModel    string
		influencers   string
		tweetsDir     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("imap-host") {
				cfg.IMAP.Host = imapHost
			}
			if cmd.Flags().Changed("imap-port") {
				cfg.IMAP.Port = imapPort
			}
			if cmd.Flags().Changed("imap-tls") {
				cfg.IMAP.TLS = imapTLS
			}
			if cmd.Flags().Changed("imap-starttls") {
				cfg.IMAP.StartTLS = imapStartTLS
			}
			if cmd.Flags().Changed("imap-insecure") {
				cfg.IMAP.InsecureSkipVerify = imapInsecure
			}

			if cmd.Flags().Changed("smtp-host") {
				cfg.SMTP.Host = smtpHost
			}
			if cmd.Flags().Changed("smtp-port") {
				cfg.SMTP.Port = smtpPort
			}
			if cmd.Flags().Changed("smtp-tls") {
				cfg.SMTP.TLS = smtpTLS
			}
			if cmd.Flags().Changed("smtp-starttls") {
				cfg.SMTP.StartTLS = smtpStartTLS
			}
			if cmd.Flags().Changed("smtp-insecure") {
				cfg.SMTP.InsecureSkipVerify = smtpInsecure
			}

			if cmd.Flags().Changed("username") {
				cfg.Auth.Username = username
				config.ApplyProviderDefaults(&cfg)
			}

			if cmd.Flags().Changed("store-path") {
				cfg.Store.Path = storePath
			}
			if cmd.Flags().Changed("ollama-host") {
				cfg.Ollama.Host = ollamaHost
			}
			if cmd.Flags().Changed("ollama-model") {
				cfg.Ollama.Model = ollamaModel
			}
			if cmd.Flags().Changed("image-endpoint") {
				cfg.Image.Endpoint = imageEndpoint
			}
			if cmd.Flags().Changed("image-model") {
				cfg.Image.Model = imageModel
			}
			if cmd.Flags().Changed("influencers") {
				cfg.Twitter.Influencers = influencers
			}
			if cmd.Flags().Changed("tweets-dir") {
				cfg.Twitter.OutputDir = tweetsDir
			}

			if cmd.Flags().Changed("password") {
				if err := secrets.SetPassword(cfg.Auth.Username, password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password stored in keyring.")
			}

			// The password lives in the keyring, not the config file.
			// Validate against the resolved value, save without it.
			effective := cfg
			if effective.Auth.Password == "" {
				if cmd.Flags().Changed("password") {
					effective.Auth.Password = password
				} else if stored, err := secrets.GetPassword(effective.Auth.Username); err == nil {
					effective.Auth.Password = stored
				}
			}
			if err := config.Validate(effective); err != nil {
				return err
			}

			path, err := config.Save(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&imapHost, "imap-host", "", "IMAP host")
	cmd.Flags().IntVar(&imapPort, "imap-port", 0, "IMAP port")
	cmd.Flags().BoolVar(&imapTLS, "imap-tls", false, "Use IMAP TLS")
	cmd.Flags().BoolVar(&imapStartTLS, "imap-starttls", false, "Use IMAP STARTTLS")
	cmd.Flags().BoolVar(&imapInsecure, "imap-insecure", false, "Skip IMAP TLS verification")

	cmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	cmd.Flags().IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	cmd.Flags().BoolVar(&smtpTLS, "smtp-tls", false, "Use SMTP TLS")
	cmd.Flags().BoolVar(&smtpStartTLS, "smtp-starttls", false, "Use SMTP STARTTLS")
	cmd.Flags().BoolVar(&smtpInsecure, "smtp-insecure", false, "Skip SMTP TLS verification")

	cmd.Flags().StringVar(&username, "username", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password or app password (stored in keyring)")

	cmd.Flags().StringVar(&storePath, "store-path", "", "SQLite store path")
	cmd.Flags().StringVar(&ollamaHost, "ollama-host", "", "Ollama base URL")
	cmd.Flags().StringVar(&ollamaModel, "ollama-model", "", "Ollama model for classification")
	cmd.Flags().StringVar(&imageEndpoint, "image-endpoint", "", "Image generation API endpoint")
	cmd.Flags().StringVar(&imageModel, "image-model", "", "Image generation model")
	cmd.Flags().StringVar(&influencers, "influencers", "", "Influencer roster JSON path")
	cmd.Flags().StringVar(&tweetsDir, "tweets-dir", "", "Tweet results output directory")

	return cmd
}

func newAuthSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Keyring secret operations",
	}
	cmd.AddCommand(newAuthSecretSetCmd())
	cmd.AddCommand(newAuthSecretGetCmd())
	return cmd
}

func newAuthSecretSetCmd() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Store a secret in the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if value == "" {
				if _, err := secrets.GetOrPrompt(args[0]); err != nil {
					return err
				}
			} else if err := secrets.SetSecret(args[0], []byte(value)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Secret stored.")
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Secret value (prompted when omitted)")

	return cmd
}

func newAuthSecretGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Read a secret from the keyring, prompting if absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := secrets.GetOrPrompt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(secret))
			return nil
		},
	}
	return cmd
}
