package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's pending purchases. Each user has at most one cart;
// it is created lazily on first use.
type Cart struct {
	ID        uuid.UUID // The unique ID for this cart.
	UserID    uuid.UUID // The owning user. One cart per user.
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one product line inside a cart. A cart holds at most one
// line per product; adding the same product again merges quantities.
type CartItem struct {
	ID        uuid.UUID // The unique ID for this cart line.
	CartID    uuid.UUID // The cart this line belongs to.
	ProductID uuid.UUID // The product being purchased.
	Quantity  int       // Units requested. Always positive.
	Product   *Product  // Populated on reads that preload the product.
	AddedAt   time.Time // Timestamp of when this line was first added.
}

// Subtotal returns the line total in cents, or 0 when the product has not
// been preloaded.
func (i *CartItem) Subtotal() int {
	if i.Product == nil {
		return 0
	}

	return i.Product.PriceCents * i.Quantity
}
