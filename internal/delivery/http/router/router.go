// Package router contains routing setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	productHandler  *handler.ProductHandler
	categoryHandler *handler.CategoryHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		productHandler:  params.ProductHandler,
		categoryHandler: params.CategoryHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/verify", r.accountHandler.VerifyToken)
	}

	// Account routes. Listing and looking up other accounts is admin-only;
	// profile returns the caller's own record.
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.accountHandler.Profile)
	}

	adminUserGroup := e.Group("/users")
	adminUserGroup.Use(r.authMiddleware.Authenticate)
	adminUserGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminUserGroup.GET("", r.accountHandler.ListAccounts)
		adminUserGroup.GET("/:id", r.accountHandler.GetAccount)
	}

	// Category routes: reads are public, mutations require the admin role.
	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("", r.categoryHandler.ListCategories)
		categoryGroup.GET("/:id", r.categoryHandler.GetCategory)
	}

	adminCategoryGroup := e.Group("/categories")
	adminCategoryGroup.Use(r.authMiddleware.Authenticate)
	adminCategoryGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminCategoryGroup.POST("", r.categoryHandler.CreateCategory)
		adminCategoryGroup.PUT("/:id", r.categoryHandler.UpdateCategory)
		adminCategoryGroup.DELETE("/:id", r.categoryHandler.DeleteCategory)
	}

	// Product routes: reads are public, mutations require the admin role,
	// buying requires any authenticated account.
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.GET("/search/:term", r.productHandler.SearchProducts)
		productGroup.GET("/category/:categoryId", r.productHandler.ListProductsByCategory)
	}

	buyGroup := e.Group("/products")
	buyGroup.Use(r.authMiddleware.Authenticate)
	{
		buyGroup.POST("/buy", r.productHandler.Purchase)
	}

	adminProductGroup := e.Group("/products")
	adminProductGroup.Use(r.authMiddleware.Authenticate)
	adminProductGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminProductGroup.POST("", r.productHandler.CreateProduct)
		adminProductGroup.PUT("/:id", r.productHandler.UpdateProduct)
		adminProductGroup.DELETE("/:id", r.productHandler.DeleteProduct)
	}
}
