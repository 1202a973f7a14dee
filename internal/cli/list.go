package cli

import (
	"fmt"

	"skillcli/internal/config"
	"skillcli/internal/store"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit int
	var category string
	var urgency string
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored emails",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
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

			stats, err := db.GetStats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Stored: %d (%d classified, %d pending)\n", stats.Total, stats.Processed, stats.Unprocessed)
			if stats.ByCategory[store.CategoryTask] > 0 || stats.ByCategory[store.CategoryNotification] > 0 {
				fmt.Fprintf(out, "Tasks: %d  Notifications: %d  Urgent: %d\n",
					stats.ByCategory[store.CategoryTask],
					stats.ByCategory[store.CategoryNotification],
					stats.ByUrgency[store.UrgencyUrgent])
			}
			fmt.Fprintln(out, "")

			emails, err := db.ListEmails(ctx, store.Filter{
				Category: category,
				Urgency:  urgency,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			if details {
				printEmailDetails(out, emails)
				return nil
			}
			printEmails(out, emails)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of emails to list (0 for all)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category (task or notification)")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Filter by urgency (urgent or normal)")
	cmd.Flags().BoolVar(&details, "details", false, "Show full message blocks instead of a table")

	return cmd
}
