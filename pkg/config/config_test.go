package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Recommender.Neighbors)
	assert.Equal(t, 0.2, cfg.Recommender.TestFraction)
	assert.Equal(t, int64(42), cfg.Recommender.SplitSeed)
	assert.Equal(t, StoreMemory, cfg.Tickets.Store)
	assert.Equal(t, 0, cfg.Redis.RedisDB)
	assert.Equal(t, StorePostgres, cfg.Storage.Backend)
	assert.True(t, cfg.UsesPostgres())
}

func TestLoadMemoryBackendNeedsNoPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("STORE_BACKEND", StoreMemory)
	t.Setenv("CATALOG_SEED_PATH", "laptops.csv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UsesPostgres())
	assert.Equal(t, "laptops.csv", cfg.Storage.CatalogSeedPath)

	t.Setenv("TICKET_STORE", StorePostgres)
	_, err = Load()
	assert.Error(t, err, "postgres tickets still need a password")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("RECO_NEIGHBORS", "7")
	t.Setenv("RECO_SPLIT_SEED", "7")
	t.Setenv("TICKET_STORE", StoreRedis)
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Recommender.Neighbors)
	assert.Equal(t, int64(7), cfg.Recommender.SplitSeed)
	assert.Equal(t, StoreRedis, cfg.Tickets.Store)
	assert.Equal(t, 3, cfg.Redis.RedisDB)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing password", env: map[string]string{"DB_PASSWORD": ""}},
		{name: "non numeric neighbors", env: map[string]string{"RECO_NEIGHBORS": "five"}},
		{name: "zero neighbors", env: map[string]string{"RECO_NEIGHBORS": "0"}},
		{name: "test fraction of one", env: map[string]string{"RECO_TEST_FRACTION": "1"}},
		{name: "unknown ticket store", env: map[string]string{"TICKET_STORE": "mongo"}},
		{name: "redis is not a storage backend", env: map[string]string{"STORE_BACKEND": StoreRedis}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
