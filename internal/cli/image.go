package cli

import (
	"fmt"
	"os"
	"strings"

	"skillcli/internal/config"
	"skillcli/internal/imagegen"

	"github.com/spf13/cobra"
)

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Image generation",
	}
	cmd.AddCommand(newImageGenerateCmd())
	return cmd
}

func newImageGenerateCmd() *cobra.Command {
	var output string
	var size string
	var model string

	cmd := &cobra.Command{
		Use:   "generate <prompt>...",
		Short: "Generate an image from a prompt and save it as PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadImageConfig()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Image.Model = model
			}
			if err := config.ValidateImage(cfg); err != nil {
				return err
			}

			prompt := strings.Join(args, " ")
			client := imagegen.NewClient(cfg.Image.Endpoint, cfg.Image.Model, cfg.Image.APIKey)

			data, err := client.Generate(cmd.Context(), imagegen.Request{
				Prompt: prompt,
				Size:   size,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = imagegen.DefaultOutputName()
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing image: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Image saved to %s (%d bytes)\n", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output PNG path (random name when empty)")
	cmd.Flags().StringVar(&size, "size", "", "Image size, e.g. 1024x1024")
	cmd.Flags().StringVar(&model, "model", "", "Override the configured model")

	return cmd
}
