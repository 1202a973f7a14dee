package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "skillcli",
		Short:        "skillcli automates email, image generation and tweet digest workflows",
		SilenceUsage: true,
	}

	cmd.AddCommand(newAuthCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newMailCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newImageCmd())
	cmd.AddCommand(newTweetsCmd())
	cmd.AddCommand(newMailboxesCmd())
	cmd.AddCommand(newAttachmentsCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.SetErr(os.Stderr)
	cmd.SetOut(os.Stdout)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
