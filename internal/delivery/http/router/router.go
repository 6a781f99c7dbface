// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/middleware"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/router/handler"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	ChatHandler    *handler.ChatHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	chatHandler    *handler.ChatHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		chatHandler:    params.ChatHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", metrics.HandlerFunc())

	api := e.Group("/api")

	// Session and account routes. Creating a session never needs a
	// credential; the directory endpoints are admin only.
	authGroup := api.Group("/auth")
	{
		adminOnly := r.authMiddleware.RequireMinimumRole(entity.RoleAdmin)

		authGroup.POST("/session", r.sessionHandler.CreateSession)
		authGroup.DELETE("/session", r.sessionHandler.DestroySession)
		authGroup.GET("/me", r.sessionHandler.Me, r.authMiddleware.Authenticate)
		authGroup.GET("/users", r.userHandler.ListUsers, r.authMiddleware.Authenticate, adminOnly)
		authGroup.PATCH("/users", r.userHandler.AssignRole, r.authMiddleware.Authenticate, adminOnly)
	}

	// Catalog routes. Reads are public and creation needs at least the
	// employee role. Updates and deletes are left to the ownership
	// check in the usecase so sellers keep control of their own
	// entries after a demotion.
	productGroup := api.Group("/products")
	{
		createOnly := r.authMiddleware.RequireMinimumRole(entity.RoleEmployee)

		productGroup.GET("", r.productHandler.ListProducts, r.authMiddleware.OptionalAuthenticate)
		productGroup.GET("/:id", r.productHandler.GetProduct, r.authMiddleware.OptionalAuthenticate)
		productGroup.POST("", r.productHandler.CreateProduct, r.authMiddleware.Authenticate, createOnly)
		productGroup.POST("/images", r.productHandler.UploadImage, r.authMiddleware.Authenticate, createOnly)
		productGroup.PUT("/:id", r.productHandler.UpdateProduct, r.authMiddleware.Authenticate)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, r.authMiddleware.Authenticate)
	}

	// Chat routes.
	chatGroup := api.Group("/chat", r.authMiddleware.Authenticate)
	{
		chatGroup.POST("/messages", r.chatHandler.SendMessage)
		chatGroup.GET("/messages", r.chatHandler.RejectMessageFetch)
		chatGroup.POST("/rooms", r.chatHandler.GetOrCreateRoom)
		chatGroup.GET("/rooms", r.chatHandler.ListRooms)
		chatGroup.GET("/rooms/:id/messages", r.chatHandler.GetMessages)
		chatGroup.GET("/stream", r.chatHandler.Stream)
	}

	// Cart and checkout routes.
	cartGroup := api.Group("/cart", r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddToCart)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveCartItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/checkout", r.cartHandler.Checkout)
	}

	// Invoice routes.
	invoiceGroup := api.Group("/invoices", r.authMiddleware.Authenticate)
	{
		invoiceGroup.GET("", r.cartHandler.ListInvoices)
		invoiceGroup.GET("/:id", r.cartHandler.GetInvoice)
		invoiceGroup.GET("/:id/qr", r.cartHandler.GetInvoiceQR)
	}
}
