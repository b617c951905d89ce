package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myLaptopDesk/domain"
)

func TestLaptopReserveRelease(t *testing.T) {
	ctx := context.Background()
	repo := NewLaptopRepository(domain.Laptop{Name: "UltraBook9"})
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ok, err := repo.ReserveIfUnowned(ctx, "UltraBook9", "Alice", at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveIfUnowned(ctx, "UltraBook9", "Bob", at)
	require.NoError(t, err)
	assert.False(t, ok)

	l, err := repo.FindByName(ctx, "UltraBook9")
	require.NoError(t, err)
	require.True(t, l.Reserved())
	assert.Equal(t, "Alice", *l.ReservedBy)
	assert.Equal(t, at, *l.ReservedAt)

	ok, err = repo.ReleaseIfOwnedBy(ctx, "UltraBook9", "Bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ReleaseIfOwnedBy(ctx, "UltraBook9", "Alice")
	require.NoError(t, err)
	assert.True(t, ok)

	l, err = repo.FindByName(ctx, "UltraBook9")
	require.NoError(t, err)
	assert.False(t, l.Reserved())

	ok, err = repo.ReserveIfUnowned(ctx, "Missing", "Alice", at)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.FindByName(ctx, "Missing")
	assert.ErrorIs(t, err, domain.ErrLaptopNotFound)
}

func TestLaptopReserveIsMutuallyExclusive(t *testing.T) {
	repo := NewLaptopRepository(domain.Laptop{Name: "X1"})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ReserveIfUnowned(context.Background(), "X1", "manager", time.Now())
			if err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestLaptopUpsertKeepsReservation(t *testing.T) {
	ctx := context.Background()
	repo := NewLaptopRepository()

	gpu := true
	l := domain.Laptop{Name: "Workstation7"}
	require.NoError(t, repo.Upsert(ctx, &l))
	assert.NotZero(t, l.ID)

	_, err := repo.ReserveIfUnowned(ctx, "Workstation7", "Carol", time.Now())
	require.NoError(t, err)

	again := domain.Laptop{Name: "Workstation7", RequiredGPU: &gpu}
	require.NoError(t, repo.Upsert(ctx, &again))
	assert.Equal(t, l.ID, again.ID)
	require.NotNil(t, again.ReservedBy)
	assert.Equal(t, "Carol", *again.ReservedBy)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssignmentOffboard(t *testing.T) {
	ctx := context.Background()
	repo := NewAssignmentRepository()

	a := &domain.Assignment{EmployeeID: "E1", Name: "Alice", Role: "Developer", LaptopName: "UltraBook9", Status: domain.StatusOnboarding, Date: "2026-03-01"}
	require.NoError(t, repo.Insert(ctx, a))
	assert.Equal(t, uint64(1), a.ID)

	active, err := repo.FindActive(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	auditErr := errors.New("audit sink down")
	_, err = repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-01", func(domain.Assignment) error { return auditErr })
	assert.ErrorIs(t, err, auditErr)

	active, err = repo.FindActive(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, active, 1, "failed audit must leave the record in place")

	var audited domain.Assignment
	returned, err := repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-01", func(a domain.Assignment) error {
		audited = a
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffboarding, returned.Status)
	assert.Equal(t, "2026-04-01", returned.ReturnDate)
	assert.Equal(t, returned, audited)

	active, err = repo.FindActive(ctx, "E1")
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = repo.Offboard(ctx, "E1", "UltraBook9", "2026-04-02", nil)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
}

func TestTicketRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository()

	require.NoError(t, repo.Insert(ctx, domain.Ticket{ID: "a", Description: "first", Status: domain.TicketStatusOpen}))
	require.NoError(t, repo.Insert(ctx, domain.Ticket{ID: "b", Description: "second", Status: domain.TicketStatusOpen}))
	assert.Error(t, repo.Insert(ctx, domain.Ticket{ID: "a"}))

	ok, err := repo.UpdateStatus(ctx, "b", "Closed")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, "zzz", "Closed")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "Closed", all[1].Status)
}

func TestMaintenanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMaintenanceRepository(domain.MaintenanceRecord{LaptopName: "X1", Status: "Healthy"})

	rec, err := repo.FindByLaptop(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, "Healthy", rec.Status)

	_, err = repo.FindByLaptop(ctx, "Y2")
	assert.ErrorIs(t, err, domain.ErrMaintenanceNotFound)

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	ok, err := repo.UpdateStatus(ctx, "X1", "Battery replacement due", at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, "Y2", "Healthy", at)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.InsertIfAbsent(ctx, domain.MaintenanceRecord{LaptopName: "Y2", Status: "New", LastUpdated: at}))
	rec, err = repo.FindByLaptop(ctx, "Y2")
	require.NoError(t, err)
	assert.Equal(t, "New", rec.Status)

	require.NoError(t, repo.InsertIfAbsent(ctx, domain.MaintenanceRecord{LaptopName: "X1", Status: "Healthy", LastUpdated: at}))
	rec, err = repo.FindByLaptop(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, "Battery replacement due", rec.Status)
}

func TestLaptopEmptyOwnerIsStillOwned(t *testing.T) {
	ctx := context.Background()
	empty := ""
	repo := NewLaptopRepository(domain.Laptop{Name: "UltraBook9", ReservedBy: &empty})

	ok, err := repo.ReserveIfUnowned(ctx, "UltraBook9", "Alice", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ReleaseIfOwnedBy(ctx, "UltraBook9", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveIfUnowned(ctx, "UltraBook9", "Alice", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}
