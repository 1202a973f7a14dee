package cli

import (
	"fmt"

	"skillcli/internal/config"
	"skillcli/internal/imap"

	"github.com/spf13/cobra"
)

func newMailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Mail operations",
	}
	cmd.AddCommand(newMailListCmd())
	return cmd
}

func newMailListCmd() *cobra.Command {
	var folder string
	var page int
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages on the server",
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

			service := imap.NewService()
			messages, total, err := service.ListMessages(cfg, folder, page, pageSize)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Folder: %s (total %d)\n", folder, total)
			printMessages(cmd.OutOrStdout(), messages)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Mailbox folder (default from config)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based, newest first)")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Messages per page")

	return cmd
}
