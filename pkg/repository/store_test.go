package repository

import (
	"context"
	"testing"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to ":memory:" would see its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := NewStore(db, zap.NewNop())
	store.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, store.Migrate())

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedCatalog(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.AddCategories(ctx, []models.Category{
		{CategoryName: "shoes", Description: "Footwear"},
		{CategoryName: "hats", Description: "Headwear"},
	}))
	require.NoError(t, store.AddProducts(ctx, []models.Product{
		{ProductName: "Sneaker", Price: decimal.NewFromFloat(10.5), ImageURL: "sneaker.png", Category: "shoes", Amount: 4},
		{ProductName: "Boot", Price: decimal.NewFromInt(20), ImageURL: "boot.png", Category: "shoes", Amount: 1},
		{ProductName: "Cap", Price: decimal.NewFromFloat(2.25), ImageURL: "cap.png", Category: "hats", Amount: 0},
	}))
}

func seedCustomer(t *testing.T, store *Store, username string) int {
	t.Helper()
	customer := &models.Customer{FirstName: "Matti", LastName: "Meikäläinen", Username: username, PasswordHash: "hash"}
	require.NoError(t, store.CreateCustomer(context.Background(), customer))
	return customer.ID
}
