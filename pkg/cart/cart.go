// Package cart is a concurrency-safe container of counted line
// items. The cart serializes changes to its item list and each
// item serializes changes to its own quantity; no operation holds
// both the cart lock and a long-running item read, so Count may
// observe each item before or after a concurrent update, but never
// a torn value.
package cart

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrInvalidQuantity is returned for quantities that are not
// allowed by the operation.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Product identifies something that can be put in a cart. Two
// products are the same product when their IDs match.
type Product struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Cart holds at most one Item per product ID, in insertion order.
type Cart struct {
	mu    sync.Mutex
	items []*Item
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of p into the cart. An item already holding
// the largest representable quantity is left unchanged.
func (c *Cart) Add(p Product) {
	_ = c.AddQuantity(p, 1)
}

// AddQuantity adds quantity units of p. An existing item for p has
// its quantity increased in place; otherwise a new item is appended.
// An increase that would overflow int is rejected with
// ErrInvalidQuantity.
func (c *Cart) AddQuantity(p Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(
			"%w: add %d of %s", ErrInvalidQuantity, quantity, p.ID,
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.find(p.ID); item != nil {
		return item.add(quantity)
	}

	c.items = append(c.items, newItem(p, quantity))
	return nil
}

// Remove drops the item for p. It is a no-op when p is absent.
func (c *Cart) Remove(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.product.ID != p.ID {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = nil
	}
	c.items = kept
}

// SetQuantity replaces the quantity of the item for p. Setting zero
// removes the item. It fails for negative quantities and for
// products not in the cart.
func (c *Cart) SetQuantity(p Product, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf(
			"%w: set %d of %s", ErrInvalidQuantity, quantity, p.ID,
		)
	}
	if quantity == 0 {
		c.Remove(p)
		return nil
	}

	item := c.Item(p.ID)
	if item == nil {
		return fmt.Errorf("product %s is not in the cart", p.ID)
	}
	return item.SetQuantity(quantity)
}

// Item returns the item for the product ID, or nil.
func (c *Cart) Item(id string) *Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(id)
}

// Items returns the cart's items in insertion order. The slice is
// a snapshot; the items themselves are live.
func (c *Cart) Items() []*Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Count returns the total quantity across all items, capped at
// math.MaxInt. Each item is read through its own lock after the
// cart lock is released.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items() {
		q := item.Quantity()
		if total > math.MaxInt-q {
			return math.MaxInt
		}
		total += q
	}
	return total
}

// find must be called with c.mu held.
func (c *Cart) find(id string) *Item {
	for _, item := range c.items {
		if item.product.ID == id {
			return item
		}
	}
	return nil
}
