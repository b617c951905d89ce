package reservation_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myLaptopDesk/business/reservation"
	"myLaptopDesk/domain"
	"myLaptopDesk/internal/repository/memory"
)

func newCatalog() *memory.LaptopRepository {
	return memory.NewLaptopRepository(
		domain.Laptop{Name: "UltraBook9"},
		domain.Laptop{Name: "BizLite13"},
	)
}

func TestReserveThenCheck(t *testing.T) {
	ctx := context.Background()
	svc := reservation.NewReservationService(newCatalog())

	res, err := svc.Check(ctx, "UltraBook9")
	require.NoError(t, err)
	assert.Equal(t, "Laptop 'UltraBook9' is not reserved.", res.Message)
	assert.Empty(t, res.ReservedBy)

	msg, err := svc.Reserve(ctx, "UltraBook9", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Laptop 'UltraBook9' reserved by 'Alice'.", msg)

	res, err = svc.Check(ctx, "UltraBook9")
	require.NoError(t, err)
	assert.Equal(t, "Laptop 'UltraBook9' is reserved by 'Alice'.", res.Message)
	assert.Equal(t, "Alice", res.ReservedBy)
	assert.NotNil(t, res.ReservedAt)

	_, err = svc.Reserve(ctx, "UltraBook9", "Bob")
	assert.ErrorIs(t, err, domain.ErrReservationConflict)
	assert.Equal(t, "Laptop 'UltraBook9' is not available for reservation or already reserved.", domain.StatusMessage(err))
}

func TestReserveUnknownLaptop(t *testing.T) {
	svc := reservation.NewReservationService(newCatalog())

	_, err := svc.Reserve(context.Background(), "Ghost", "Alice")
	assert.ErrorIs(t, err, domain.ErrLaptopNotFound)

	_, err = svc.Check(context.Background(), "Ghost")
	assert.ErrorIs(t, err, domain.ErrLaptopNotFound)
	assert.Equal(t, "Laptop 'Ghost' not found.", domain.StatusMessage(err))
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	svc := reservation.NewReservationService(newCatalog())

	_, err := svc.Reserve(ctx, "BizLite13", "Alice")
	require.NoError(t, err)

	_, err = svc.Release(ctx, "BizLite13", "Bob")
	assert.ErrorIs(t, err, domain.ErrReservationConflict)
	assert.Equal(t, "Laptop 'BizLite13' is not reserved by 'Bob'.", domain.StatusMessage(err))

	msg, err := svc.Release(ctx, "BizLite13", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Laptop 'BizLite13' released by 'Alice'.", msg)

	// free again, so Bob can take it
	_, err = svc.Reserve(ctx, "BizLite13", "Bob")
	assert.NoError(t, err)

	_, err = svc.Release(ctx, "Ghost", "Bob")
	assert.ErrorIs(t, err, domain.ErrLaptopNotFound)
}

func TestReserveValidation(t *testing.T) {
	svc := reservation.NewReservationService(newCatalog())
	ctx := context.Background()

	tests := []struct {
		name            string
		laptop, manager string
	}{
		{"no laptop", "", "Alice"},
		{"no manager", "UltraBook9", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reserve(ctx, tt.laptop, tt.manager)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, err = svc.Release(ctx, tt.laptop, tt.manager)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := svc.Check(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConcurrentReserveHasOneWinner(t *testing.T) {
	svc := reservation.NewReservationService(newCatalog())

	const managers = 32
	var wg sync.WaitGroup
	errs := make([]error, managers)
	for i := 0; i < managers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), "UltraBook9", fmt.Sprintf("manager-%d", i))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrReservationConflict)
	}
	assert.Equal(t, 1, winners)
}

type brokenRepo struct{ err error }

func (b brokenRepo) FindByName(context.Context, string) (domain.Laptop, error) {
	return domain.Laptop{}, b.err
}
func (b brokenRepo) ReserveIfUnowned(context.Context, string, string, time.Time) (bool, error) {
	return false, b.err
}
func (b brokenRepo) ReleaseIfOwnedBy(context.Context, string, string) (bool, error) {
	return false, b.err
}

func TestStoreErrorsPropagate(t *testing.T) {
	storeErr := errors.New("db gone")
	svc := reservation.NewReservationService(brokenRepo{err: storeErr})

	_, err := svc.Reserve(context.Background(), "UltraBook9", "Alice")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrReservationConflict)

	_, err = svc.Check(context.Background(), "UltraBook9")
	assert.ErrorIs(t, err, storeErr)
}
