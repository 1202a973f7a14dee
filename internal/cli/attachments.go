package cli

import (
	"fmt"
	"strconv"

	"skillcli/internal/config"
	"skillcli/internal/imap"

	"github.com/spf13/cobra"
)

func newAttachmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachments",
		Short: "Attachment operations",
	}
	cmd.AddCommand(newAttachmentsDownloadCmd())
	return cmd
}

func newAttachmentsDownloadCmd() *cobra.Command {
	var folder string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download <uid>",
		Short: "Download attachments from a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uid: %s", args[0])
			}
			if outputDir == "" {
				outputDir = "."
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
			files, err := service.DownloadAttachments(cfg, folder, uint32(uid), outputDir)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No attachments found.")
				return nil
			}
			for _, path := range files {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Mailbox folder (default from config)")
	cmd.Flags().StringVar(&outputDir, "output", ".", "Output directory")

	return cmd
}
