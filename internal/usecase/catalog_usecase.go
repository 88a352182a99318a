// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput defines the data required to create or update a category.
// The slug is always derived from the name, never supplied by the caller.
type CategoryInput struct {
	Name string
}

// ProductInput defines the data required to create or update a product.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int
	Stock       int
	IsActive    bool
	CategoryID  uuid.UUID
}

// ProductListFilter narrows product listings in the public catalog.
type ProductListFilter struct {
	CategorySlug string
	ActiveOnly   bool
}

// CatalogUsecase defines the interface for category and product management.
type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, filter ProductListFilter) ([]*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
