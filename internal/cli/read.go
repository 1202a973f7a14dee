package cli

import (
	"fmt"
	"strconv"

	"skillcli/internal/config"
	"skillcli/internal/imap"

	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "read <uid>",
		Short: "Read a message by UID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uid: %s", args[0])
			}

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

			service := imap.NewService()
			msg, err := service.ReadMessage(cfg, folder, uint32(uid))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "UID: %d\n", msg.UID)
			if msg.Subject != "" {
				fmt.Fprintf(out, "Subject: %s\n", msg.Subject)
			}
			if msg.From != "" {
				fmt.Fprintf(out, "From: %s\n", msg.From)
			}
			if msg.To != "" {
				fmt.Fprintf(out, "To: %s\n", msg.To)
			}
			if msg.Cc != "" {
				fmt.Fprintf(out, "Cc: %s\n", msg.Cc)
			}
			if !msg.Date.IsZero() {
				fmt.Fprintf(out, "Date: %s\n", msg.Date.Format("2006-01-02 15:04:05 -0700"))
			}
			if len(msg.Attachments) > 0 {
				fmt.Fprintf(out, "Attachments:")
				for _, att := range msg.Attachments {
					fmt.Fprintf(out, " %s", att.Filename)
				}
				fmt.Fprintln(out, "")
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, msg.TextBody)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Mailbox folder (default from config)")

	return cmd
}
