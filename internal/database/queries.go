package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nexus/internal/domain"
)

func (d *Database) GetTenantConfig(
	ctx context.Context,
	tenantID string,
) (domain.TenantConfig, error) {
	query := `select tenant_id, model_id, default_prompt
	from tenant_configs
	where tenant_id = ?`

	var cfg domain.TenantConfig
	err := d.db.QueryRowContext(ctx, query, tenantID).
		Scan(&cfg.TenantID, &cfg.ModelID, &cfg.DefaultPrompt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TenantConfig{}, domain.ErrTenantConfigNotFound
	}
	if err != nil {
		return domain.TenantConfig{}, fmt.Errorf("failed to scan row: %w", err)
	}

	return cfg, nil
}

func (d *Database) UpsertTenantConfig(ctx context.Context, cfg domain.TenantConfig) error {
	tenantID := strings.TrimSpace(cfg.TenantID)
	if tenantID == "" {
		return errors.New("tenant ID is empty")
	}

	query := `insert into tenant_configs (tenant_id, model_id, default_prompt)
	values (?, ?, ?)
	on conflict (tenant_id) do update
	set model_id = excluded.model_id,
	default_prompt = excluded.default_prompt,
	updated_at = current_timestamp`

	_, err := d.db.ExecContext(ctx, query,
		tenantID,
		strings.TrimSpace(cfg.ModelID),
		strings.TrimSpace(cfg.DefaultPrompt))

	return err
}

func (d *Database) ListTenantConfigs(ctx context.Context) ([]domain.TenantConfig, error) {
	query := `select tenant_id, model_id, default_prompt
	from tenant_configs
	order by tenant_id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "ListTenantConfigs")
		}
	}()

	var configs []domain.TenantConfig
	for rows.Next() {
		var cfg domain.TenantConfig
		if err = rows.Scan(&cfg.TenantID, &cfg.ModelID, &cfg.DefaultPrompt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		configs = append(configs, cfg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return configs, nil
}

func (d *Database) DeleteTenantConfig(ctx context.Context, tenantID string) error {
	query := "delete from tenant_configs where tenant_id = ?"

	_, err := d.db.ExecContext(ctx, query, tenantID)

	return err
}
