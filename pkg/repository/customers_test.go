package repository

import (
	"context"
	"testing"

	"github.com/example/storefront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	store := newTestStore(t)
	seedCustomer(t, store, "matti")
	ctx := context.Background()

	hash, err := store.PasswordHash(ctx, "matti")
	require.NoError(t, err)
	assert.Equal(t, "hash", hash)

	_, err = store.PasswordHash(ctx, "nobody")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateCustomerRejectsDuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	seedCustomer(t, store, "matti")

	err := store.CreateCustomer(context.Background(), &models.Customer{Username: "matti", PasswordHash: "other"})
	assert.Error(t, err)
}

func TestProfileByUsername(t *testing.T) {
	store := newTestStore(t)
	seedCustomer(t, store, "matti")
	ctx := context.Background()

	profile, err := store.ProfileByUsername(ctx, "matti")
	require.NoError(t, err)
	assert.Equal(t, &models.Profile{FirstName: "Matti", LastName: "Meikäläinen", Username: "matti"}, profile)

	_, err = store.ProfileByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
