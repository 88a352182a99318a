// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// AddCartItemInput defines the data required to add a product to a cart.
type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartView is the cart with its lines and computed totals.
type CartView struct {
	Cart       *entity.Cart
	Items      []*entity.CartItem
	TotalCents int
	TotalItems int
}

// CartUsecase defines the interface for shopping cart operations. Every
// operation is scoped to the authenticated user's own cart.
type CartUsecase interface {
	// GetCart returns the user's cart with items and totals, creating the
	// cart lazily if the user doesn't have one yet.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)

	// AddItem puts a product into the cart. Adding a product already in
	// the cart merges quantities; the merged quantity must still fit the
	// product's stock.
	AddItem(ctx context.Context, userID uuid.UUID, input AddCartItemInput) (*CartView, error)

	// UpdateItemQuantity sets the quantity of an existing line.
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartView, error)

	// RemoveItem deletes a single line from the cart.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error)

	// ClearCart removes every line from the cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
