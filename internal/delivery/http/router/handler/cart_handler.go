package handler

import (
	"net/http"
	"time"

	deliverycontext "market/internal/delivery/context"
	"market/internal/delivery/http/response"
	domainerrors "market/internal/domain/errors"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for shopping cart handlers.
type CartHandler struct {
	cartUC usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cartUC usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// addCartItemRequest is the JSON body for POST /cart/items.
type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// updateCartItemRequest is the JSON body for PUT /cart/items/:id.
type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// cartItemResponse is one cart line with its computed subtotal.
type cartItemResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	ProductSlug   string    `json:"product_slug,omitempty"`
	Quantity      int       `json:"quantity"`
	SubtotalCents int       `json:"subtotal_cents"`
	AddedAt       time.Time `json:"added_at"`
}

// cartResponse is the full cart view with totals.
type cartResponse struct {
	ID         string             `json:"id"`
	Items      []cartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalCents int                `json:"total_cents"`
}

func toCartResponse(view *usecase.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		line := cartItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			Quantity:      item.Quantity,
			SubtotalCents: item.Subtotal(),
			AddedAt:       item.AddedAt,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductSlug = item.Product.Slug
		}
		items = append(items, line)
	}

	return cartResponse{
		ID:         view.Cart.ID.String(),
		Items:      items,
		TotalItems: view.TotalItems,
		TotalCents: view.TotalCents,
	}
}

// GetCart returns the authenticated user's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	view, err := h.cartUC.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(view), "")
}

// AddItem adds a product to the authenticated user's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid product id")
	}

	view, err := h.cartUC.AddItem(c.Request().Context(), user.ID, usecase.AddCartItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCartResponse(view), "Item added to cart")
}

// UpdateItem sets the quantity of one cart line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid cart item id")
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.cartUC.UpdateItemQuantity(c.Request().Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(view), "Cart item updated")
}

// RemoveItem deletes one cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid cart item id")
	}

	view, err := h.cartUC.RemoveItem(c.Request().Context(), user.ID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(view), "Cart item removed")
}

// ClearCart empties the authenticated user's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), user.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
