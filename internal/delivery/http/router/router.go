// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lifelink/internal/delivery/http/middleware"
	"lifelink/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ListingHandler *handler.ListingHandler
	RequestHandler *handler.RequestHandler
	ReviewHandler  *handler.ReviewHandler
	SupportHandler *handler.SupportHandler
	ChatHandler    *handler.ChatHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.UserHandler.Register)
		authGroup.POST("/login", p.UserHandler.Login)
		authGroup.POST("/refresh", p.UserHandler.RefreshToken)
		authGroup.POST("/logout", p.UserHandler.Logout)
	}

	// Public catalog
	e.GET("/listings", p.ListingHandler.Search)
	e.GET("/listings/:id", p.ListingHandler.Get)
	e.GET("/providers/:id/rating", p.ReviewHandler.ProviderRating)
	e.GET("/providers/:id/reviews", p.ReviewHandler.ListForProvider)

	// Member routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(p.AuthMiddleware.Authenticate)
	{
		profileGroup.GET("", p.UserHandler.GetProfile)
		profileGroup.PUT("", p.UserHandler.UpdateProfile)
	}

	listingGroup := e.Group("/listings")
	listingGroup.Use(p.AuthMiddleware.Authenticate)
	{
		listingGroup.POST("", p.ListingHandler.Publish)
		listingGroup.GET("/mine", p.ListingHandler.Mine)
		listingGroup.DELETE("/:id", p.ListingHandler.Delete)
		listingGroup.GET("/:id/checkout", p.ListingHandler.Checkout)
	}

	requestGroup := e.Group("/requests")
	requestGroup.Use(p.AuthMiddleware.Authenticate)
	{
		requestGroup.POST("", p.RequestHandler.Create)
		requestGroup.GET("/sent", p.RequestHandler.ListSent)
		requestGroup.GET("/received", p.RequestHandler.ListReceived)
		requestGroup.POST("/:id/advance", p.RequestHandler.Advance)
		requestGroup.GET("/:id/qr", p.RequestHandler.HandoffQR)
		requestGroup.POST("/:id/review", p.ReviewHandler.Submit)
	}

	chatGroup := e.Group("/chat")
	chatGroup.Use(p.AuthMiddleware.Authenticate)
	{
		chatGroup.GET("/:id/messages", p.ChatHandler.History)
		chatGroup.POST("/:id/messages", p.ChatHandler.Post)
		chatGroup.GET("/:id/stream", p.ChatHandler.Stream)
	}

	supportGroup := e.Group("/support")
	supportGroup.Use(p.AuthMiddleware.Authenticate)
	{
		supportGroup.POST("", p.SupportHandler.Submit)
		supportGroup.GET("", p.SupportHandler.List, p.AuthMiddleware.RequireAdmin)
	}

	// Administration panel, gated to the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(p.AuthMiddleware.Authenticate)
	adminGroup.Use(p.AuthMiddleware.RequireAdmin)
	{
		adminGroup.GET("/pending", p.AdminHandler.PendingListings)
		adminGroup.POST("/listings/:id/verify", p.AdminHandler.VerifyListing)
		adminGroup.GET("/stats", p.AdminHandler.Stats)
	}
}
