// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a user has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart line is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the operations for cart and cart-line persistence.
type CartRepository interface {
	// FindCartByUserID retrieves the user's cart without its items.
	FindCartByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// CreateCart persists a new, empty cart for the user.
	CreateCart(ctx context.Context, cart *entity.Cart) error

	// FindItems retrieves every line of the cart with the product preloaded.
	FindItems(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error)

	// FindItem retrieves the line for a specific product in the cart, if any.
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error)

	// FindItemByID retrieves a single line by its unique ID.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)

	// CreateItem persists a new cart line. The database enforces one line
	// per (cart, product).
	CreateItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItemQuantity sets the quantity of an existing line.
	UpdateItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// DeleteItem removes a single line.
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// DeleteItemsByCartID removes every line of the cart.
	DeleteItemsByCartID(ctx context.Context, cartID uuid.UUID) error
}
