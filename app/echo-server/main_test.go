package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryRepo "myLaptopDesk/internal/repository/memory"
)

func TestSeedCatalogKeepsOperatorState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("Laptop Name,Required GPU,Maintenance Status\nUltraBook9,false,Healthy\n"), 0o600))

	catalog := memoryRepo.NewLaptopRepository()
	upkeep := memoryRepo.NewMaintenanceRepository()
	require.NoError(t, seedCatalog(path, catalog, upkeep))

	ok, err := upkeep.UpdateStatus(ctx, "UltraBook9", "In Repair", time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = catalog.ReserveIfUnowned(ctx, "UltraBook9", "Alice", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	// a restart seeds the same file again
	require.NoError(t, seedCatalog(path, catalog, upkeep))

	rec, err := upkeep.FindByLaptop(ctx, "UltraBook9")
	require.NoError(t, err)
	assert.Equal(t, "In Repair", rec.Status)

	laptop, err := catalog.FindByName(ctx, "UltraBook9")
	require.NoError(t, err)
	require.True(t, laptop.Reserved())
	assert.Equal(t, "Alice", *laptop.ReservedBy)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitOrigins(" http://a, ,http://b "))
	assert.Empty(t, splitOrigins(""))
}
