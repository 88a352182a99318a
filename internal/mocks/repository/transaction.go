package repository

import (
	"context"

	"market/internal/domain/repository"
)

// StubRepositoryFactory is a test double for repository.RepositoryFactory
// that hands back whatever repositories the test configured.
type StubRepositoryFactory struct {
	UserRepository     repository.UserRepository
	CategoryRepository repository.CategoryRepository
	ProductRepository  repository.ProductRepository
	CartRepository     repository.CartRepository
}

func (f *StubRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepository
}

func (f *StubRepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return f.CategoryRepository
}

func (f *StubRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return f.ProductRepository
}

func (f *StubRepositoryFactory) NewCartRepository() repository.CartRepository {
	return f.CartRepository
}

// StubTransactionManager is a test double for repository.TransactionManager
// that runs the callback directly, with no real transaction underneath.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (tm *StubTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(tm.Factory)
}
