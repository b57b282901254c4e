package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"storefront/internal/repository/settings"
	"storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	"storefront/internal/service/customer"
	"storefront/internal/service/guest"
	"storefront/internal/service/reconcile"
)

// Deps carries the wired services the handlers depend on.
type Deps struct {
	Customers  *customer.Service
	Guests     *guest.Service
	Carts      *cart.Service
	Reconciler *reconcile.Service
	Checkout   *checkout.Service
	Settings   settings.Repository

	// AdminToken guards the back-office endpoints. Empty disables them.
	AdminToken string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, cache *redis.Client, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Guest-Session"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, cache))

	h := newHandlers(deps, logger)

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)
	router.POST("/guest/session", h.issueGuestSession)

	authed := router.Group("/", authMiddleware(deps.Customers))
	authed.GET("/me", h.me)
	authed.POST("/auth/logout", h.logout)
	authed.POST("/checkout", h.submitCheckout)

	carts := router.Group("/cart", backingMiddleware(deps.Customers, deps.Guests))
	carts.GET("", h.getCart)
	carts.POST("/items", h.addCartItem)
	carts.DELETE("/items/:lineID", h.removeCartItem)
	carts.DELETE("", h.clearCart)

	router.GET("/settings/shipping", h.getShippingSettings)
	router.PUT("/settings/shipping", h.putShippingSettings)
	router.POST("/customers/:id/verify-email", h.verifyCustomerEmail)

	return router
}
