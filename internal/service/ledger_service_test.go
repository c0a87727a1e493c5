package service

import (
	"context"
	"sync"
	"testing"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/ledger"
	"chopengine/internal/pricing"
	"chopengine/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerService() LedgerService {
	return NewLedgerService(repository.NewMemoryLedgerStore(), pricing.DefaultRules(), 0)
}

func TestLedgerService_RendersTotalsAndUnits(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "till-1", dto.AddLedgerItemRequest{ID: "a", Category: "food", Name: "Rice", UnitPrice: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, "till-1", dto.AddLedgerItemRequest{ID: "b", Category: "drink", Name: "Coke", UnitPrice: decimal.NewFromInt(500), IsDrink: true})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "plate", resp.Entries[0].Unit)
	assert.Equal(t, "piece", resp.Entries[1].Unit)

	got, err := svc.Get(ctx, "till-1", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, got.Totals.DeliveryFee.Equal(decimal.NewFromInt(500)))
	assert.True(t, got.Totals.Total.Equal(decimal.NewFromInt(2230)))
}

func TestLedgerService_DecrementFloorAndExplicitRemove(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()
	_, _ = svc.AddItem(ctx, "till-1", dto.AddLedgerItemRequest{ID: "a", Category: "food", Name: "Rice", UnitPrice: decimal.NewFromInt(1000)})

	resp, err := svc.Decrement(ctx, "till-1", "food", "a")
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 1, resp.Entries[0].Count)

	resp, err = svc.RemoveItem(ctx, "till-1", "food", "a")
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)

	_, err = svc.Increment(ctx, "till-1", "food", "a")
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

func TestLedgerService_Validation(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "bad session!", decimal.Zero)
	assert.True(t, apierror.IsValidation(err))

	_, err = svc.Increment(ctx, "till-1", "snack", "a")
	assert.True(t, apierror.IsValidation(err))

	_, err = svc.AddItem(ctx, "till-1", dto.AddLedgerItemRequest{ID: "a", Category: "food", UnitPrice: decimal.NewFromInt(-1)})
	assert.True(t, apierror.IsValidation(err))
}

func TestLedgerService_ConcurrentAddsAreSerializedPerSession(t *testing.T) {
	svc := newLedgerService()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "till-1", dto.AddLedgerItemRequest{ID: "a", Category: "food", Name: "Rice", UnitPrice: decimal.NewFromInt(10)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	resp, err := svc.Get(ctx, "till-1", decimal.Zero)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, workers, resp.Entries[0].Count, "no lost updates")
}
