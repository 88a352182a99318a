package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

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

type catalogServiceMocks struct {
	categoryRepo *mockRepo.MockCategoryRepository
	productRepo  *mockRepo.MockProductRepository
}

func newCatalogServiceForTest(t *testing.T) (usecase.CatalogUsecase, *catalogServiceMocks) {
	t.Helper()

	mocks := &catalogServiceMocks{
		categoryRepo: mockRepo.NewMockCategoryRepository(t),
		productRepo:  mockRepo.NewMockProductRepository(t),
	}

	svc := NewCatalogService(CatalogServiceParams{
		CategoryRepo: mocks.categoryRepo,
		ProductRepo:  mocks.productRepo,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, mocks
}

func TestCatalogService_CreateCategory_Success(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Run(func(args mock.Arguments) {
			category := args.Get(1).(*entity.Category)
			category.ID = uuid.New()
			category.Slug = "dark-roast"
		}).
		Return(nil)

	category, err := svc.CreateCategory(ctx, usecase.CategoryInput{Name: "Dark Roast"})

	require.NoError(t, err)
	assert.Equal(t, "Dark Roast", category.Name)
	assert.Equal(t, "dark-roast", category.Slug)
}

func TestCatalogService_CreateCategory_DuplicateName(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Return(domainerrors.ErrCategoryExists)

	_, err := svc.CreateCategory(ctx, usecase.CategoryInput{Name: "Dark Roast"})

	require.ErrorIs(t, err, domainerrors.ErrCategoryExists)
}

func TestCatalogService_UpdateCategory_NotFound(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()
	id := uuid.New()

	mocks.categoryRepo.On("FindByID", ctx, id).Return(nil, repository.ErrCategoryNotFound)

	_, err := svc.UpdateCategory(ctx, id, usecase.CategoryInput{Name: "Renamed"})

	require.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCatalogService_DeleteCategory_StillInUse(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()
	id := uuid.New()

	mocks.categoryRepo.On("Delete", ctx, id).Return(domainerrors.ErrCategoryInUse)

	err := svc.DeleteCategory(ctx, id)

	require.ErrorIs(t, err, domainerrors.ErrCategoryInUse)
}

func TestCatalogService_ListProducts_ByCategorySlug(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()

	category := &entity.Category{ID: uuid.New(), Name: "Dark Roast", Slug: "dark-roast"}
	products := []*entity.Product{{ID: uuid.New(), Name: "House Blend", CategoryID: category.ID}}

	mocks.categoryRepo.On("FindBySlug", ctx, "dark-roast").Return(category, nil)
	mocks.productRepo.On("FindAll", ctx, repository.ProductFilter{
		CategoryID: &category.ID,
		ActiveOnly: true,
	}).Return(products, nil)

	got, err := svc.ListProducts(ctx, usecase.ProductListFilter{CategorySlug: "dark-roast", ActiveOnly: true})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCatalogService_ListProducts_UnknownCategorySlug(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("FindBySlug", ctx, "ghost").Return(nil, repository.ErrCategoryNotFound)

	_, err := svc.ListProducts(ctx, usecase.ProductListFilter{CategorySlug: "ghost"})

	require.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()
	categoryID := uuid.New()

	mocks.categoryRepo.On("FindByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "Dark Roast"}, nil)
	mocks.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*entity.Product)
			product.ID = uuid.New()
			product.Slug = "house-blend"
		}).
		Return(nil)

	product, err := svc.CreateProduct(ctx, usecase.ProductInput{
		Name:       "House Blend",
		PriceCents: 1250,
		Stock:      20,
		IsActive:   true,
		CategoryID: categoryID,
	})

	require.NoError(t, err)
	assert.Equal(t, "house-blend", product.Slug)
	assert.Equal(t, categoryID, product.CategoryID)
}

func TestCatalogService_CreateProduct_NegativePrice(t *testing.T) {
	svc, _ := newCatalogServiceForTest(t)

	_, err := svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name:       "Bad Price",
		PriceCents: -1,
		CategoryID: uuid.New(),
	})

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()
	categoryID := uuid.New()

	mocks.categoryRepo.On("FindByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := svc.CreateProduct(ctx, usecase.ProductInput{
		Name:       "Orphan",
		PriceCents: 100,
		CategoryID: categoryID,
	})

	require.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCatalogService_GetProductBySlug_NotFound(t *testing.T) {
	svc, mocks := newCatalogServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("FindBySlug", ctx, "ghost").Return(nil, repository.ErrProductNotFound)

	_, err := svc.GetProductBySlug(ctx, "ghost")

	require.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
