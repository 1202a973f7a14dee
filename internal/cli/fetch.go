package cli

import (
	"fmt"
	"os"

	"skillcli/internal/config"
	"skillcli/internal/imap"

	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var folder string
	var limit int
	var output string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch recent emails into a text report",
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
				limit = cfg.Defaults.FetchLimit
			}

			service := imap.NewService()
			messages, total, err := service.FetchRecent(cfg, folder, limit)
			if err != nil {
				return err
			}

			if toStdout {
				return imap.WriteReport(cmd.OutOrStdout(), messages)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating report file: %w", err)
			}
			defer file.Close()

			if err := imap.WriteReport(file, messages); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d of %d messages from %s into %s\n", len(messages), total, folder, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Mailbox folder (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of recent messages to fetch")
	cmd.Flags().StringVar(&output, "output", "emails_result.txt", "Report file path")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the report to stdout instead of a file")

	return cmd
}
