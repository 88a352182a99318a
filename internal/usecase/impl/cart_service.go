package impl

import (
	"context"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart with items and totals, creating the cart
// lazily on first use.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.findOrCreateCart(ctx, userID, srv.cartRepo)
	if err != nil {
		return nil, err
	}

	return srv.buildCartView(ctx, srv.cartRepo, cart)
}

// AddItem puts a product into the cart. Adding a product already present
// merges quantities; the merged quantity must still fit the stock.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input usecase.AddCartItemInput) (*usecase.CartView, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	var view *usecase.CartView
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product")
		}
		if !product.IsActive {
			return domainerrors.ErrProductNotAvailable
		}

		cart, err := srv.findOrCreateCart(ctx, userID, cartRepo)
		if err != nil {
			return err
		}

		existing, err := cartRepo.FindItem(ctx, cart.ID, product.ID)
		switch {
		case err == nil:
			merged := existing.Quantity + input.Quantity
			if merged > product.Stock {
				return domainerrors.ErrInsufficientStock
			}
			if err := cartRepo.UpdateItemQuantity(ctx, existing.ID, merged); err != nil {
				return err
			}
		case errors.Is(err, repository.ErrCartItemNotFound):
			if input.Quantity > product.Stock {
				return domainerrors.ErrInsufficientStock
			}
			item := &entity.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}
			if err := cartRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		default:
			return errors.Wrap(err, "failed to check existing cart line")
		}

		view, err = srv.buildCartView(ctx, cartRepo, cart)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Cart item added",
		slog.Any("userID", userID),
		slog.Any("productID", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return view, nil
}

// UpdateItemQuantity sets the quantity of an existing line. The line must
// belong to the user's own cart.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*usecase.CartView, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	var view *usecase.CartView
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()

		cart, item, err := srv.findOwnedItem(ctx, cartRepo, userID, itemID)
		if err != nil {
			return err
		}

		product, err := productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to load product for cart line")
		}
		if quantity > product.Stock {
			return domainerrors.ErrInsufficientStock
		}

		if err := cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}

		view, err = srv.buildCartView(ctx, cartRepo, cart)

		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// RemoveItem deletes a single line from the user's own cart.
func (srv *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*usecase.CartView, error) {
	var view *usecase.CartView
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		cart, item, err := srv.findOwnedItem(ctx, cartRepo, userID, itemID)
		if err != nil {
			return err
		}

		if err := cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return err
		}

		view, err = srv.buildCartView(ctx, cartRepo, cart)

		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// ClearCart removes every line from the user's cart. Clearing a cart that
// doesn't exist yet is a no-op.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := srv.cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to load cart for clearing")
	}

	if err := srv.cartRepo.DeleteItemsByCartID(ctx, cart.ID); err != nil {
		return err
	}

	srv.log(ctx).Debug("Cart cleared", slog.Any("userID", userID))

	return nil
}

// findOrCreateCart returns the user's cart, creating it when absent. A
// concurrent create losing the race on the unique user_id falls back to
// reading the winner's cart.
func (srv *cartService) findOrCreateCart(ctx context.Context, userID uuid.UUID, cartRepo repository.CartRepository) (*entity.Cart, error) {
	cart, err := cartRepo.FindCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart = &entity.Cart{UserID: userID}
	if createErr := cartRepo.CreateCart(ctx, cart); createErr != nil {
		cart, err = cartRepo.FindCartByUserID(ctx, userID)
		if err != nil {
			return nil, createErr
		}
	}

	return cart, nil
}

// findOwnedItem loads a cart line and verifies it belongs to the user's
// cart. A line in someone else's cart surfaces as not found.
func (srv *cartService) findOwnedItem(ctx context.Context, cartRepo repository.CartRepository, userID, itemID uuid.UUID) (*entity.Cart, *entity.CartItem, error) {
	cart, err := cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil, domainerrors.ErrCartItemNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to load cart")
	}

	item, err := cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, nil, domainerrors.ErrCartItemNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to load cart line")
	}
	if item.CartID != cart.ID {
		return nil, nil, domainerrors.ErrCartItemNotFound
	}

	return cart, item, nil
}

// buildCartView loads the cart's lines and computes totals.
func (srv *cartService) buildCartView(ctx context.Context, cartRepo repository.CartRepository, cart *entity.Cart) (*usecase.CartView, error) {
	items, err := cartRepo.FindItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart items")
	}

	view := &usecase.CartView{
		Cart:  cart,
		Items: items,
	}
	for _, item := range items {
		view.TotalCents += item.Subtotal()
		view.TotalItems += item.Quantity
	}

	return view, nil
}
