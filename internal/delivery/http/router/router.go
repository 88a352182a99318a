// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		catalogHandler: params.CatalogHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Public catalog reads
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
		catalogGroup.GET("/categories/:slug", r.catalogHandler.GetCategory)
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:slug", r.catalogHandler.GetProduct)
	}

	// Catalog mutations require an authenticated superuser
	adminCatalogGroup := e.Group("/catalog")
	adminCatalogGroup.Use(r.authMiddleware.Authenticate)
	adminCatalogGroup.Use(r.authMiddleware.RequireSuperuser)
	{
		adminCatalogGroup.POST("/categories", r.catalogHandler.CreateCategory)
		adminCatalogGroup.PUT("/categories/:id", r.catalogHandler.UpdateCategory)
		adminCatalogGroup.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)
		adminCatalogGroup.POST("/products", r.catalogHandler.CreateProduct)
		adminCatalogGroup.PUT("/products/:id", r.catalogHandler.UpdateProduct)
		adminCatalogGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)
	}

	// Cart routes, all scoped to the authenticated user
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:id", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}
}
