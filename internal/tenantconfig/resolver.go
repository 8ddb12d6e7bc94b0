package tenantconfig

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"nexus/internal/awsclient"
	"nexus/internal/domain"
)

// Store reads tenant overrides from the key-value config store.
type Store interface {
	GetTenantConfig(ctx context.Context, tenantID string) (domain.TenantConfig, error)
}

type Defaults struct {
	ModelID   string
	PromptKey string
}

// Settings are the effective values for one request.
type Settings struct {
	ModelID   string
	PromptKey string
}

type Resolver struct {
	store    Store
	defaults Defaults
	log      *slog.Logger
}

func NewResolver(store Store, defaults Defaults, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}

	return &Resolver{
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

// Resolve never fails: a store error or a missing record degrades to the
// process defaults.
func (r *Resolver) Resolve(ctx context.Context, tenantID string) Settings {
	cfg := r.fetch(ctx, tenantID)

	settings := Settings{
		ModelID:   strings.TrimSpace(cfg.ModelID),
		PromptKey: strings.TrimSpace(cfg.DefaultPrompt),
	}
	if settings.ModelID == "" {
		settings.ModelID = r.defaults.ModelID
	}
	if settings.PromptKey == "" {
		settings.PromptKey = r.defaults.PromptKey
	}

	return settings
}

func (r *Resolver) fetch(ctx context.Context, tenantID string) domain.TenantConfig {
	if r.store == nil {
		return domain.TenantConfig{}
	}

	cfg, err := r.store.GetTenantConfig(ctx, tenantID)
	if err == nil {
		return cfg
	}

	if errors.Is(err, domain.ErrTenantConfigNotFound) {
		r.log.DebugContext(ctx, "No tenant config so defaults will be used",
			"tenantID", tenantID)

		return domain.TenantConfig{}
	}

	r.log.WarnContext(ctx, "Failed to fetch tenant config so defaults will be used",
		"error", err,
		"errorCode", awsclient.ErrorCode(err),
		"tenantID", tenantID)

	return domain.TenantConfig{}
}
