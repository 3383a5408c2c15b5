package chat

import (
	"context"
	"testing"
	"time"

	"pitchbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContextStoreUnknownSession(t *testing.T) {
	store := NewMemoryContextStore(0)

	sc, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Nil(t, sc.LastProduct)
	assert.Empty(t, sc.LastSize)
}

func TestMemoryContextStoreLastWriteWins(t *testing.T) {
	store := NewMemoryContextStore(0)
	ctx := context.Background()

	first := &models.SessionContext{LastProduct: &models.Product{ID: "p1", Name: "Nike Air Max"}, LastSize: "40"}
	second := &models.SessionContext{LastProduct: &models.Product{ID: "p2", Name: "Adidas Predator"}}

	require.NoError(t, store.Set(ctx, "s1", first))
	require.NoError(t, store.Set(ctx, "s1", second))

	sc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sc.LastProduct)
	assert.Equal(t, "p2", sc.LastProduct.ID)
	assert.Empty(t, sc.LastSize)
}

func TestMemoryContextStoreSessionIsolation(t *testing.T) {
	store := NewMemoryContextStore(0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", &models.SessionContext{LastSize: "40"}))
	require.NoError(t, store.Set(ctx, "b", &models.SessionContext{LastSize: "42"}))

	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "40", a.LastSize)
	assert.Equal(t, "42", b.LastSize)
}

func TestMemoryContextStoreIdleExpiry(t *testing.T) {
	store := NewMemoryContextStore(30 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", &models.SessionContext{LastSize: "40"}))
	time.Sleep(60 * time.Millisecond)

	sc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, sc.LastSize)
}

func TestMemoryContextStoreCopiesOut(t *testing.T) {
	store := NewMemoryContextStore(0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", &models.SessionContext{LastSize: "40"}))

	sc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	sc.LastSize = "43"

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "40", again.LastSize)
}
