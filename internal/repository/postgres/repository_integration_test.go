//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myLaptopDesk/domain"
	"myLaptopDesk/internal/repository/postgres"
	"myLaptopDesk/internal/testinfra"
)

func TestLaptopRepositoryReservation(t *testing.T) {
	ctx := context.Background()
	db := testinfra.Postgres(t)
	repo := postgres.NewLaptopRepository(db)

	laptop := &domain.Laptop{Name: "UltraBook9"}
	require.NoError(t, repo.Upsert(ctx, laptop))
	assert.NotZero(t, laptop.ID)

	ok, err := repo.ReserveIfUnowned(ctx, "UltraBook9", "Alice", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// re-seeding the catalog keeps the reservation
	gpu := true
	require.NoError(t, repo.Upsert(ctx, &domain.Laptop{Name: "UltraBook9", RequiredGPU: &gpu}))

	got, err := repo.FindByName(ctx, "UltraBook9")
	require.NoError(t, err)
	require.True(t, got.Reserved())
	assert.Equal(t, "Alice", *got.ReservedBy)
	require.NotNil(t, got.RequiredGPU)
	assert.True(t, *got.RequiredGPU)

	ok, err = repo.ReserveIfUnowned(ctx, "UltraBook9", "Bob", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ReleaseIfOwnedBy(ctx, "UltraBook9", "Bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ReleaseIfOwnedBy(ctx, "UltraBook9", "Alice")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindByName(ctx, "Ghost")
	assert.ErrorIs(t, err, domain.ErrLaptopNotFound)
}

func TestLaptopRepositoryConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewLaptopRepository(testinfra.Postgres(t))
	require.NoError(t, repo.Upsert(ctx, &domain.Laptop{Name: "X1"}))

	var mu sync.Mutex
	winners := 0
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := repo.ReserveIfUnowned(ctx, "X1", fmt.Sprintf("manager-%d", i), time.Now())
			if err == nil && ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestAssignmentRepositoryOffboard(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAssignmentRepository(testinfra.Postgres(t))

	a := &domain.Assignment{EmployeeID: "E1", Name: "Alice", Role: "Developer", LaptopName: "UltraBook9", Status: domain.StatusOnboarding, Date: "2026-03-01"}
	require.NoError(t, repo.Insert(ctx, a))

	auditErr := errors.New("audit failed")
	_, err := repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-01", func(domain.Assignment) error { return auditErr })
	assert.ErrorIs(t, err, auditErr)

	active, err := repo.FindActive(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.StatusOnboarding, active[0].Status, "rolled back")
	assert.Empty(t, active[0].ReturnDate)

	returned, err := repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-01", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffboarding, returned.Status)
	assert.Equal(t, a.ID, returned.ID)

	active, err = repo.FindActive(ctx, "E1")
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-01", nil)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
}

func TestTicketRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewTicketRepository(testinfra.Postgres(t))

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Insert(ctx, domain.Ticket{ID: "t-1", Description: "first", Status: domain.TicketStatusOpen, CreatedAt: now}))
	require.NoError(t, repo.Insert(ctx, domain.Ticket{ID: "t-2", Description: "second", Status: domain.TicketStatusOpen, CreatedAt: now.Add(time.Second)}))

	ok, err := repo.UpdateStatus(ctx, "t-1", "Closed")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, "missing", "Closed")
	require.NoError(t, err)
	assert.False(t, ok)

	tickets, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "Closed", tickets[0].Status)
	assert.Equal(t, "t-2", tickets[1].ID)
}

func TestMaintenanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewMaintenanceRepository(testinfra.Postgres(t))

	_, err := repo.FindByLaptop(ctx, "UltraBook9")
	assert.ErrorIs(t, err, domain.ErrMaintenanceNotFound)

	ok, err := repo.UpdateStatus(ctx, "UltraBook9", "Healthy", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.InsertIfAbsent(ctx, domain.MaintenanceRecord{LaptopName: "UltraBook9", Status: "New", LastUpdated: time.Now()}))

	ok, err = repo.UpdateStatus(ctx, "UltraBook9", "Healthy", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.InsertIfAbsent(ctx, domain.MaintenanceRecord{LaptopName: "UltraBook9", Status: "New", LastUpdated: time.Now()}))

	rec, err := repo.FindByLaptop(ctx, "UltraBook9")
	require.NoError(t, err)
	assert.Equal(t, "Healthy", rec.Status)
}
