package handler

import (
	"net/http"
	"time"

	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for category and product handlers.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalogUC usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// categoryRequest is the JSON body for category mutations.
type categoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// productRequest is the JSON body for product mutations.
type productRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents" validate:"min=0"`
	Stock       int    `json:"stock" validate:"min=0"`
	IsActive    *bool  `json:"is_active"`
	CategoryID  string `json:"category_id" validate:"required,uuid"`
}

// categoryResponse is the public view of a category.
type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// productResponse is the public view of a product.
type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCategoryResponse(category *entity.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
	}
}

func toProductResponse(product *entity.Product) productResponse {
	return productResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
		CategoryID:  product.CategoryID.String(),
		CreatedAt:   product.CreatedAt,
	}
}

// ListCategories returns every category.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// GetCategory returns a single category by slug.
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	category, err := h.catalogUC.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryResponse(category), "")
}

// CreateCategory creates a category. Superuser only.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.catalogUC.CreateCategory(c.Request().Context(), usecase.CategoryInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCategoryResponse(category), "Category created successfully")
}

// UpdateCategory renames a category. Superuser only.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid category id")
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.catalogUC.UpdateCategory(c.Request().Context(), id, usecase.CategoryInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCategoryResponse(category), "Category updated successfully")
}

// DeleteCategory removes an empty category. Superuser only.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid category id")
	}

	if err := h.catalogUC.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

// ListProducts returns products, optionally narrowed to a category slug.
// Anonymous listings only see active products.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context(), usecase.ProductListFilter{
		CategorySlug: c.QueryParam("category"),
		ActiveOnly:   true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// GetProduct returns a single product by slug.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUC.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// CreateProduct creates a product. Superuser only.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	input, err := h.bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// UpdateProduct replaces a product's mutable fields. Superuser only.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid product id")
	}

	input, err := h.bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// DeleteProduct removes a product. Superuser only.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid product id")
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

func (h *CatalogHandler) bindProductInput(c echo.Context) (usecase.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return usecase.ProductInput{}, response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return usecase.ProductInput{}, errors.WithStack(err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return usecase.ProductInput{}, domainerrors.ErrValidationFailed.WithDetails("invalid category id")
	}

	// New products default to active unless explicitly disabled.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsActive:    isActive,
		CategoryID:  categoryID,
	}, nil
}
