package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/store"
)

func TestAddToCartIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	c := New(store.NewMemory())

	require.NoError(t, c.AddToCart(ctx, model.Sofa))
	require.NoError(t, c.AddToCart(ctx, model.Chair))
	require.NoError(t, c.AddToCart(ctx, model.Sofa))

	items, err := c.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, model.Sofa, items[0].Type)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Len(t, items[0].ID, 8)
	assert.Equal(t, model.Chair, items[1].Type)
	assert.Equal(t, 1, items[1].Quantity)

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAddToCartKeepsID(t *testing.T) {
	ctx := context.Background()
	c := New(store.NewMemory())
	require.NoError(t, c.AddToCart(ctx, model.Table))
	first, err := c.Items(ctx)
	require.NoError(t, err)

	require.NoError(t, c.AddToCart(ctx, model.Table))
	second, err := c.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestAddToCartUnknownType(t *testing.T) {
	c := New(store.NewMemory())
	err := c.AddToCart(context.Background(), "lamp")
	assert.ErrorIs(t, err, model.ErrUnknownFurniture)
}

func TestCartIgnoresTemplates(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_, err := kv.Put(ctx, "template/x", []byte("{}"))
	require.NoError(t, err)

	items, err := New(kv).Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
