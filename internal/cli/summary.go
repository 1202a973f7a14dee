package cli

import (
	"fmt"
	"time"

	"skillcli/internal/config"
	"skillcli/internal/email"
	"skillcli/internal/smtp"
	"skillcli/internal/store"
	"skillcli/internal/summary"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var all bool
	var limit int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Send a digest of classified emails to yourself",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.ValidateSMTP(cfg); err != nil {
				return err
			}

			storePath, err := config.StorePath(cfg)
			if err != nil {
				return err
			}
			db, err := store.Open(storePath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var emails []store.Email
			if all {
				emails, err = db.RecentClassified(ctx, limit)
			} else {
				emails, err = db.UrgentClassified(ctx)
			}
			if err != nil {
				return err
			}
			if len(emails) == 0 {
				fmt.Fprintln(out, "Nothing to summarize.")
				return nil
			}

			digest, err := summary.Build(emails, time.Now())
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(out, digest.HTML)
				return nil
			}

			msg, err := email.BuildMessage(email.ComposeInput{
				From:        cfg.Auth.Username,
				To:          []string{cfg.Auth.Username},
				Subject:     digest.Subject,
				Body:        digest.HTML,
				ContentType: email.ContentTypeHTML,
			})
			if err != nil {
				return err
			}

			if err := smtp.Send(cfg, cfg.Auth.Username, []string{cfg.Auth.Username}, msg); err != nil {
				return err
			}

			if err := db.TouchEmails(ctx, digest.IDs); err != nil {
				return err
			}

			fmt.Fprintf(out, "Digest of %d messages sent to %s\n", digest.Count, cfg.Auth.Username)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include all recently classified emails, not only urgent ones")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of emails in the digest with --all")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the digest HTML instead of sending")

	return cmd
}
