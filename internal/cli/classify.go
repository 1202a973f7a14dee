package cli

import (
	"fmt"

	"skillcli/internal/classify"
	"skillcli/internal/config"
	"skillcli/internal/store"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var limit int
	var model string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify stored emails with a local model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Ollama.Model = model
			}
			if err := config.ValidateOllama(cfg); err != nil {
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

			client := classify.NewOllamaClient(cfg.Ollama.Host, cfg.Ollama.Model)
			classifier := classify.NewClassifier(client, db)

			out := cmd.OutOrStdout()
			result, err := classifier.Run(cmd.Context(), limit, func(index, total int, subject string, c classify.Classification, err error) {
				if err != nil {
					fmt.Fprintf(out, "[%d/%d] %s: %v\n", index, total, subject, err)
					return
				}
				fmt.Fprintf(out, "[%d/%d] %s: %s/%s\n", index, total, subject, c.Category, c.Urgency)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Classified %d of %d messages (%d failed)\n", result.Processed, result.Total, result.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of emails to classify (0 for all)")
	cmd.Flags().StringVar(&model, "model", "", "Override the configured model")

	return cmd
}
