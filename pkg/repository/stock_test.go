package repository

import (
	"context"
	"testing"

	"github.com/example/storefront/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockBalance(t *testing.T) {
	store := newTestStore(t)
	seedCatalog(t, store)
	ctx := context.Background()

	rows, err := store.StockBalance(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	want := map[int]decimal.Decimal{
		1: decimal.NewFromInt(42),
		2: decimal.NewFromInt(20),
		3: decimal.Zero,
	}
	for _, row := range rows {
		assert.True(t, want[row.ID].Equal(row.StockBalance), "product %d: got %s", row.ID, row.StockBalance)
		assert.True(t, row.Price.Mul(decimal.NewFromInt(int64(row.Amount))).Equal(row.StockBalance))
	}

	rows, err = store.StockBalance(ctx, "1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sneaker", rows[0].ProductName)
	assert.Equal(t, 4, rows[0].Amount)
}

func TestGrandTotalIsRecomputed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	total, err := store.GrandTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.GrandTotal.IsZero())

	seedCatalog(t, store)
	total, err = store.GrandTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.GrandTotal.Equal(decimal.NewFromInt(62)), "got %s", total.GrandTotal)

	require.NoError(t, store.UpdatePrice(ctx, 2, decimal.NewFromInt(30)))
	total, err = store.GrandTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.GrandTotal.Equal(decimal.NewFromInt(72)), "got %s", total.GrandTotal)
}

func TestLowStockProducts(t *testing.T) {
	store := newTestStore(t)
	seedCatalog(t, store)
	customerID := seedCustomer(t, store, "matti")
	ctx := context.Background()

	low, err := store.LowStockProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, low, "products without orders are never flagged, even at amount 0")

	// Sneaker: amount 4, ordered 2+2 -> deficit 0, not flagged.
	// Cap: amount 0, ordered 1 -> flagged.
	_, err = store.PlaceOrder(ctx, customerID, []models.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	})
	require.NoError(t, err)

	low, err = store.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 3, low[0].ID)
	assert.Equal(t, "Cap", low[0].ProductName)
	assert.Equal(t, 0, low[0].Amount)
	assert.Equal(t, 1, low[0].TotalOrdered)
	assert.True(t, low[0].Price.Equal(decimal.NewFromFloat(2.25)))

	// One more sneaker tips it over.
	_, err = store.PlaceOrder(ctx, customerID, []models.LineItem{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	low, err = store.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, 1, low[0].ID)
	assert.Equal(t, 5, low[0].TotalOrdered)
	assert.Equal(t, -1, low[0].Deficit())
}
