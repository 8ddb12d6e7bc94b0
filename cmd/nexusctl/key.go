package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"nexus/internal/cache"

	"github.com/spf13/cobra"
)

func newKeyCmd() *cobra.Command {
	var tenantID, modelID, text string

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the cache key for a tenant, model and text",
		Long: "Print the cache key the summarizer uses for a tenant, model and text.\n" +
			"The text is read from --text, or from stdin when --text is omitted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(modelID) == "" {
				return errors.New("--tenant and --model are required")
			}

			if !cmd.Flags().Changed("text") {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(b)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cache.Key(tenantID, modelID, text))
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID")
	cmd.Flags().StringVar(&modelID, "model", "", "model ID")
	cmd.Flags().StringVar(&text, "text", "", "text to fingerprint (default: stdin)")

	return cmd
}
