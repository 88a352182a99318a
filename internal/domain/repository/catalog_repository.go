// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindBySlug retrieves a single category by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// FindAll retrieves every category ordered by name.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category. Name/slug uniqueness is enforced by
	// the database.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category; the slug is re-derived from
	// the name on write.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Deletion is restricted while products
	// still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a single product by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// FindAll retrieves products matching the filter, ordered by name.
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product. Slug uniqueness is enforced by the
	// database.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}
