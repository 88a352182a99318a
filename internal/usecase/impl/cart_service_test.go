package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	mockRepo "market/internal/mocks/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartServiceMocks struct {
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func newCartServiceForTest(t *testing.T) (usecase.CartUsecase, *cartServiceMocks) {
	t.Helper()

	mocks := &cartServiceMocks{
		cartRepo:    mockRepo.NewMockCartRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
	}

	svc := NewCartService(CartServiceParams{
		TxManager: &mockRepo.StubTransactionManager{
			Factory: &mockRepo.StubRepositoryFactory{
				CartRepository:    mocks.cartRepo,
				ProductRepository: mocks.productRepo,
			},
		},
		CartRepo: mocks.cartRepo,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, mocks
}

func testProduct(stock int) *entity.Product {
	return &entity.Product{
		ID:         uuid.New(),
		Name:       "Single Origin Beans",
		PriceCents: 1250,
		Stock:      stock,
		IsActive:   true,
	}
}

func TestCartService_GetCart_CreatesCartLazily(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(nil, repository.ErrCartNotFound).Once()
	mocks.cartRepo.On("CreateCart", ctx, mock.AnythingOfType("*entity.Cart")).
		Run(func(args mock.Arguments) {
			cart := args.Get(1).(*entity.Cart)
			cart.ID = uuid.New()
		}).
		Return(nil)
	mocks.cartRepo.On("FindItems", ctx, mock.AnythingOfType("uuid.UUID")).Return([]*entity.CartItem{}, nil)

	view, err := svc.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, view.Cart.UserID)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalCents)
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(10)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("FindItem", ctx, cart.ID, product.ID).Return(nil, repository.ErrCartItemNotFound)
	mocks.cartRepo.On("CreateItem", ctx, mock.AnythingOfType("*entity.CartItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(*entity.CartItem)
			item.ID = uuid.New()
			item.AddedAt = time.Now()
		}).
		Return(nil)
	mocks.cartRepo.On("FindItems", ctx, cart.ID).Return([]*entity.CartItem{
		{CartID: cart.ID, ProductID: product.ID, Quantity: 2, Product: product},
	}, nil)

	view, err := svc.AddItem(ctx, userID, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, 2500, view.TotalCents)
	assert.Equal(t, 2, view.TotalItems)
}

func TestCartService_AddItem_MergesQuantities(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(10)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	existing := &entity.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: product.ID, Quantity: 3}

	mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("FindItem", ctx, cart.ID, product.ID).Return(existing, nil)
	mocks.cartRepo.On("UpdateItemQuantity", ctx, existing.ID, 5).Return(nil)
	mocks.cartRepo.On("FindItems", ctx, cart.ID).Return([]*entity.CartItem{
		{CartID: cart.ID, ProductID: product.ID, Quantity: 5, Product: product},
	}, nil)

	view, err := svc.AddItem(ctx, userID, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, view.TotalItems)
}

func TestCartService_AddItem_MergedQuantityExceedsStock(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(4)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	existing := &entity.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: product.ID, Quantity: 3}

	mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("FindItem", ctx, cart.ID, product.ID).Return(existing, nil)

	_, err := svc.AddItem(ctx, userID, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})

	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(10)
	product.IsActive = false

	mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := svc.AddItem(ctx, userID, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 1})

	require.ErrorIs(t, err, domainerrors.ErrProductNotAvailable)
}

func TestCartService_AddItem_NonPositiveQuantity(t *testing.T) {
	svc, _ := newCartServiceForTest(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), usecase.AddCartItemInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_UpdateItemQuantity_OtherUsersLine(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	foreignItem := &entity.CartItem{ID: uuid.New(), CartID: uuid.New(), Quantity: 1}

	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("FindItemByID", ctx, foreignItem.ID).Return(foreignItem, nil)

	_, err := svc.UpdateItemQuantity(ctx, userID, foreignItem.ID, 2)

	require.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_RemoveItem_Success(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	item := &entity.CartItem{ID: uuid.New(), CartID: cart.ID, Quantity: 1}

	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("FindItemByID", ctx, item.ID).Return(item, nil)
	mocks.cartRepo.On("DeleteItem", ctx, item.ID).Return(nil)
	mocks.cartRepo.On("FindItems", ctx, cart.ID).Return([]*entity.CartItem{}, nil)

	view, err := svc.RemoveItem(ctx, userID, item.ID)

	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_ClearCart_NoCartIsNoop(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(nil, repository.ErrCartNotFound)

	err := svc.ClearCart(ctx, userID)

	require.NoError(t, err)
}

func TestCartService_ClearCart_Success(t *testing.T) {
	svc, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	mocks.cartRepo.On("FindCartByUserID", ctx, userID).Return(cart, nil)
	mocks.cartRepo.On("DeleteItemsByCartID", ctx, cart.ID).Return(nil)

	err := svc.ClearCart(ctx, userID)

	require.NoError(t, err)
}
