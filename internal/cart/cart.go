// Package cart records furniture the user wants to buy. The designer only
// notifies it; cart contents never affect the scene.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/store"
)

const keyPrefix = "cart/"

// Notifier receives add-to-cart requests from the designer.
type Notifier interface {
	AddToCart(ctx context.Context, t model.FurnitureType) error
}

// Item is one cart line.
type Item struct {
	ID       string              `json:"id"`
	Type     model.FurnitureType `json:"type"`
	Quantity int                 `json:"quantity"`
}

// Cart stores one line per furniture type in a key-value store.
type Cart struct {
	kv store.KV
}

func New(kv store.KV) *Cart {
	return &Cart{kv: kv}
}

// AddToCart increments the quantity of t, creating the line on first add.
func (c *Cart) AddToCart(ctx context.Context, t model.FurnitureType) error {
	if _, ok := model.LookupArchetype(t); !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownFurniture, t)
	}
	key := keyPrefix + string(t)

	item := Item{ID: uuid.New().String()[:8], Type: t}
	data, err := c.kv.Get(ctx, key)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("failed to parse cart item %s: %w", t, err)
		}
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("failed to read cart: %w", err)
	}
	item.Quantity++

	data, err = json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal cart item: %w", err)
	}
	if _, err := c.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save cart item %s: %w", t, err)
	}
	return nil
}

// Items returns the cart lines in the order they were first added.
func (c *Cart) Items(ctx context.Context) ([]Item, error) {
	entries, err := c.kv.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		var it Item
		if err := json.Unmarshal(e.Value, &it); err != nil {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// Count returns the total quantity across all lines.
func (c *Cart) Count(ctx context.Context) (int, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n, nil
}
