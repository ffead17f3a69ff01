package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/config"
	"github.com/eltech/pos-terminal/internal/presentation/http/handler"
	"github.com/eltech/pos-terminal/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Receipt      *handler.ReceiptHandler
	Notification *handler.NotificationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
	Log *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCatalogRoutes(v1, h)
		registerCartRoutes(v1, h)
		registerCheckoutRoutes(v1, h)
		registerReceiptRoutes(v1, h)

		v1.GET("/notifications", h.Notification.List)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.POST("/refresh", h.Catalog.Refresh)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.POST("/items/:id/discount", h.Cart.Discount)
		cart.DELETE("/items/:id/discount", h.Cart.ResetPrice)
		cart.POST("/undo", h.Cart.Undo)
		cart.PUT("/payment", h.Cart.SetPayment)
	}
}

func registerCheckoutRoutes(v1 *gin.RouterGroup, h *Handlers) {
	checkout := v1.Group("/checkout")
	{
		checkout.GET("", h.Checkout.Get)
		checkout.POST("", h.Checkout.Initiate)
		checkout.POST("/confirm", h.Checkout.Confirm)
		checkout.POST("/cancel", h.Checkout.Cancel)
	}
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers) {
	receipts := v1.Group("/receipts")
	{
		receipts.GET("/last", h.Receipt.Last)
		receipts.GET("/last/html", h.Receipt.HTML)
		receipts.GET("/last/pdf", h.Receipt.PDF)
		receipts.POST("/last/print", h.Receipt.Print)
	}
}
