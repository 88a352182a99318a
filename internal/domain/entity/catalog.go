package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing. Name and Slug are unique.
type Category struct {
	ID        uuid.UUID // The unique ID for this category.
	Name      string    // Human-readable category name, unique.
	Slug      string    // URL-safe identifier derived from Name on every write.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a single sellable item. Prices are stored in cents to avoid
// floating point rounding.
type Product struct {
	ID          uuid.UUID // The unique ID for this product.
	Name        string    // Human-readable product name.
	Slug        string    // URL-safe identifier derived from Name, unique across products.
	Description string    // Optional free-form description.
	PriceCents  int       // Unit price in cents. Never negative.
	Stock       int       // Units available. Never negative.
	IsActive    bool      // Inactive products stay listed in admin views but cannot be bought.
	CategoryID  uuid.UUID // The category this product belongs to.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
