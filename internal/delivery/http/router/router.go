// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/config"
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	ItemHandler    *handler.ItemHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	itemHandler    *handler.ItemHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		itemHandler:    params.ItemHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	if r.cfg.Metrics != nil && r.cfg.Metrics.Enabled {
		path := r.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		e.GET(path, echo.WrapHandler(promhttp.Handler()))
	}

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.GetMe, r.authMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	// Catalog routes; reads are public, writes require the admin role
	itemGroup := e.Group("/items")
	{
		itemGroup.GET("", r.itemHandler.ListItems)
		itemGroup.GET("/:id", r.itemHandler.GetItem)

		adminOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleAdmin),
		}
		itemGroup.POST("", r.itemHandler.CreateItem, adminOnly...)
		itemGroup.PUT("/:id", r.itemHandler.UpdateItem, adminOnly...)
		itemGroup.DELETE("/:id", r.itemHandler.DeleteItem, adminOnly...)
	}

	// Cart routes; every caller operates on their own cart
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:itemId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:itemId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("", r.orderHandler.ListOrders, adminOnly)
		orderGroup.GET("/myorders", r.orderHandler.ListMyOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.PUT("/:id/pay", r.orderHandler.MarkPaid, adminOnly)
		orderGroup.PUT("/:id/deliver", r.orderHandler.MarkDelivered, adminOnly)
		orderGroup.PUT("/:id/status", r.orderHandler.UpdateStatus, adminOnly)
	}

	// User management routes; the whole group is admin only
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate, adminOnly)
	{
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.PUT("/:id/role", r.userHandler.UpdateRole)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser)
	}
}
