package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"nexus/internal/database"
	"nexus/internal/domain"

	"github.com/spf13/cobra"
)

func newTenantCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenant configs in the local SQLite store",
	}

	openDB := func(cmd *cobra.Command) (*database.Database, error) {
		log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

		return database.New(cmd.Context(), dbPath, log)
	}

	var modelID, promptKey string
	setCmd := &cobra.Command{
		Use:   "set <tenant-id>",
		Short: "Create or replace a tenant config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			cfg := domain.TenantConfig{
				TenantID:      args[0],
				ModelID:       modelID,
				DefaultPrompt: promptKey,
			}
			if err = db.UpsertTenantConfig(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("upsert tenant config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s saved.\n", args[0])
			return nil
		},
	}
	setCmd.Flags().StringVar(&modelID, "model", "", "model ID override (empty = default)")
	setCmd.Flags().StringVar(&promptKey, "prompt", "", "prompt template key override (empty = default)")

	getCmd := &cobra.Command{
		Use:   "get <tenant-id>",
		Short: "Show a tenant config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			cfg, err := db.GetTenantConfig(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get tenant config (tenantID = %s): %w", args[0], err)
			}

			return printTenantConfigs(cmd.OutOrStdout(), []domain.TenantConfig{cfg})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all tenant configs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			configs, err := db.ListTenantConfigs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tenant configs: %w", err)
			}

			return printTenantConfigs(cmd.OutOrStdout(), configs)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <tenant-id>",
		Short: "Delete a tenant config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err = db.DeleteTenantConfig(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete tenant config (tenantID = %s): %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "tenants.sqlite", "path to the SQLite tenant config store")
	cmd.AddCommand(setCmd, getCmd, listCmd, deleteCmd)

	return cmd
}

func printTenantConfigs(w io.Writer, configs []domain.TenantConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "TENANT\tMODEL\tPROMPT")
	for _, cfg := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			cfg.TenantID,
			orDefault(cfg.ModelID),
			orDefault(cfg.DefaultPrompt))
	}

	return tw.Flush()
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}

	return s
}
