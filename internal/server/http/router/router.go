package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/boklen/rentals/internal/metrics"
	"github.com/boklen/rentals/internal/server/http/handlers"
	"github.com/boklen/rentals/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. A nil m
// disables request metrics and serves 404 on /metrics.
func Setup(facade handlers.RentalFacade, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(m.Middleware())
	engine.Use(middleware.DecompressRequest(middleware.MaxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	bookingHandler := handlers.NewBookingHandler(facade)
	authHandler := handlers.NewAuthHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")

	cart := api.Group("/cart")
	cart.GET("", cartHandler.List)
	cart.POST("", cartHandler.Add)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/configure", cartHandler.Configure)
	cart.PATCH("/:cartId", cartHandler.Update)
	cart.DELETE("/:cartId", cartHandler.Remove)
	api.GET("/machines", cartHandler.Machines)

	api.GET("/orders", orderHandler.List)
	api.POST("/orders", orderHandler.Place)
	api.GET("/addresses", orderHandler.Addresses)
	api.POST("/addresses", orderHandler.AddAddress)
	api.PUT("/addresses/:id", orderHandler.UpdateAddress)

	api.GET("/profile", profileHandler.Get)
	api.PATCH("/profile", profileHandler.Update)
	api.PUT("/profile/password", profileHandler.UpdatePassword)
	api.GET("/location", profileHandler.Location)
	api.PUT("/location", profileHandler.SetLocation)
	api.GET("/locations", profileHandler.Locations)
	api.GET("/preferences", profileHandler.Preferences)
	api.PATCH("/preferences", profileHandler.UpdatePreferences)

	booking := api.Group("/booking")
	booking.GET("", bookingHandler.State)
	booking.POST("/review", bookingHandler.Review)
	booking.POST("/providers/search", bookingHandler.FindProviders)
	booking.POST("/providers/:id/select", bookingHandler.SelectProvider)
	booking.PATCH("/items/:cartId/start-date", bookingHandler.EditStartDate)
	booking.POST("/confirm", bookingHandler.Confirm)
	booking.POST("/reset", bookingHandler.Reset)

	auth := api.Group("/auth")
	auth.POST("/otp/request", authHandler.RequestOTP)
	auth.POST("/otp/verify", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)

	return engine
}
