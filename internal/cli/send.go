package cli

import (
	"fmt"

	"skillcli/internal/config"
	"skillcli/internal/email"
	"skillcli/internal/smtp"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var to string
	var cc string
	var bcc string
	var subject string
	var body string
	var bodyFile string
	var contentType string
	var attachments []string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.ValidateSMTP(cfg); err != nil {
				return err
			}

			content, err := loadBody(body, bodyFile)
			if err != nil {
				return err
			}

			in := email.ComposeInput{
				From:        cfg.Auth.Username,
				To:          splitList(to),
				Cc:          splitList(cc),
				Bcc:         splitList(bcc),
				Subject:     subject,
				Body:        content,
				ContentType: contentType,
				Attachments: attachments,
			}
			recipients := in.Recipients()
			if len(recipients) == 0 {
				return fmt.Errorf("at least one recipient is required")
			}

			msg, err := email.BuildMessage(in)
			if err != nil {
				return err
			}

			if err := smtp.Send(cfg, cfg.Auth.Username, recipients, msg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Comma-separated recipients")
	cmd.Flags().StringVar(&cc, "cc", "", "Comma-separated CC recipients")
	cmd.Flags().StringVar(&bcc, "bcc", "", "Comma-separated BCC recipients")
	cmd.Flags().StringVar(&subject, "subject", "", "Message subject (derived from body when empty)")
	cmd.Flags().StringVar(&body, "body", "", "Message body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Path to file containing message body (- for stdin)")
	cmd.Flags().StringVar(&contentType, "content-type", email.ContentTypePlain, "Body content type (text/plain or text/html)")
	cmd.Flags().StringSliceVar(&attachments, "attachment", nil, "Attachment file paths (repeatable)")

	return cmd
}
