package cart

import (
	"fmt"
	"math"
	"sync"
)

// Item is one product line in a cart. The product never changes;
// the quantity is guarded by the item's own lock.
type Item struct {
	product Product

	mu       sync.Mutex
	quantity int
}

func newItem(p Product, quantity int) *Item {
	return &Item{product: p, quantity: quantity}
}

// Product returns the item's product.
func (i *Item) Product() Product {
	return i.product
}

// Quantity returns the current quantity.
func (i *Item) Quantity() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.quantity
}

// SetQuantity replaces the quantity. Quantities below one are
// rejected; use Cart.Remove to drop an item.
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf(
			"%w: set %d of %s", ErrInvalidQuantity, quantity, i.product.ID,
		)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.quantity = quantity
	return nil
}

// add increases the quantity as a single read-modify-write. It
// leaves the quantity unchanged when the sum would overflow.
func (i *Item) add(delta int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.quantity > math.MaxInt-delta {
		return fmt.Errorf(
			"%w: adding %d to %d of %s overflows",
			ErrInvalidQuantity, delta, i.quantity, i.product.ID,
		)
	}
	i.quantity += delta
	return nil
}
