package cli

import (
	"errors"
	"fmt"

	"skillcli/internal/config"
	"skillcli/internal/imap"
	"skillcli/internal/store"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var folder string
	var limit int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync recent emails into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.ValidateIMAP(cfg); err != nil {
				return err
			}

			if folder == "" {
				folder = cfg.Defaults.Folder
			}
			if limit <= 0 {
				limit = cfg.Defaults.SyncLimit
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

			service := imap.NewService()
			messages, _, err := service.FetchRecent(cfg, folder, limit)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var added, duplicates, skipped int
			for _, msg := range messages {
				if _, err := db.InsertEmail(ctx, storeEmail(msg), storeAttachments(msg)); err != nil {
					switch {
					case errors.Is(err, store.ErrDuplicate):
						duplicates++
					case errors.Is(err, store.ErrMissingMessageID):
						skipped++
					default:
						return err
					}
					continue
				}
				added++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %s: %d new, %d duplicate, %d skipped\n", folder, added, duplicates, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Mailbox folder (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of recent messages to sync")

	return cmd
}

func storeEmail(msg imap.Message) store.Email {
	e := store.Email{
		MessageID:      msg.MessageID,
		UID:            int64(msg.UID),
		Folder:         msg.Folder,
		Subject:        msg.Subject,
		FromAddr:       msg.From,
		ToAddr:         msg.To,
		CcAddr:         msg.Cc,
		BodyPlain:      msg.TextBody,
		BodyHTML:       msg.HTMLBody,
		HasAttachments: msg.HasAttachments(),
	}
	if !msg.Date.IsZero() {
		e.DateSent.Time = msg.Date
		e.DateSent.Valid = true
	}
	return e
}

func storeAttachments(msg imap.Message) []store.Attachment {
	if len(msg.Attachments) == 0 {
		return nil
	}
	out := make([]store.Attachment, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		out = append(out, store.Attachment{
			Filename:    att.Filename,
			Size:        att.Size,
			ContentType: att.ContentType,
		})
	}
	return out
}
