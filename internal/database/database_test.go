package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"nexus/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "tenants.sqlite"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestGetTenantConfigNotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.GetTenantConfig(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTenantConfigNotFound)
}

func TestUpsertAndGetTenantConfig(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.UpsertTenantConfig(ctx, domain.TenantConfig{
		TenantID:      " acme ",
		ModelID:       "model-a",
		DefaultPrompt: "prompts/acme.txt",
	}))

	cfg, err := db.GetTenantConfig(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, domain.TenantConfig{
		TenantID:      "acme",
		ModelID:       "model-a",
		DefaultPrompt: "prompts/acme.txt",
	}, cfg)

	require.NoError(t, db.UpsertTenantConfig(ctx, domain.TenantConfig{
		TenantID: "acme",
		ModelID:  "model-b",
	}))

	cfg, err = db.GetTenantConfig(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "model-b", cfg.ModelID)
	assert.Empty(t, cfg.DefaultPrompt)
}

func TestUpsertTenantConfigRequiresTenantID(t *testing.T) {
	db := newTestDatabase(t)

	assert.Error(t, db.UpsertTenantConfig(context.Background(), domain.TenantConfig{ModelID: "m"}))
}

func TestListAndDeleteTenantConfigs(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	for _, id := range []string{"beta", "acme"} {
		require.NoError(t, db.UpsertTenantConfig(ctx, domain.TenantConfig{TenantID: id}))
	}

	configs, err := db.ListTenantConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "acme", configs[0].TenantID)
	assert.Equal(t, "beta", configs[1].TenantID)

	require.NoError(t, db.DeleteTenantConfig(ctx, "acme"))

	_, err = db.GetTenantConfig(ctx, "acme")
	assert.ErrorIs(t, err, domain.ErrTenantConfigNotFound)
}

func TestNewIsIdempotent(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "tenants.sqlite")

	first, err := New(context.Background(), path, log)
	require.NoError(t, err)
	require.NoError(t, first.UpsertTenantConfig(context.Background(), domain.TenantConfig{TenantID: "acme"}))
	require.NoError(t, first.Close())

	second, err := New(context.Background(), path, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	_, err = second.GetTenantConfig(context.Background(), "acme")
	assert.NoError(t, err)
}
