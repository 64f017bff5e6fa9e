// Package api wires the HTTP surface of the ordering service onto the ledgers.
package api

import (
	"bottle_orders/internal/middleware" // Auth middleware
	"bottle_orders/internal/store"      // Ledgers
	"net/http"                          // HTTP status codes
	"time"                              // CORS max age

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps holds everything the handlers need
type Deps struct {
	Identity    *store.IdentityStore // Users and admin
	Orders      *store.OrderLedger   // Order ledger
	Support     *store.SupportLedger // Support ledger
	Contacts    *store.ContactInbox  // Contact inbox
	Redis       *redis.Client        // List cache, nil disables caching
	CacheTTL    time.Duration        // List cache lifetime
	Tokens      TokenIssuer          // Bearer token signing
	FrontendURL string               // Allowed CORS origin
}

// NewRouter builds the gin engine with every route mounted under /api
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Allow the SPA origin to call the API with bearer tokens
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cache := listCache{rdb: d.Redis, ttl: d.CacheTTL}
	auth := middleware.JWTAuthMiddleware(d.Tokens.Secret)
	userOnly := middleware.UserOnlyMiddleware()
	adminOnly := middleware.AdminOnlyMiddleware(d.Identity)

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", RegisterHandler(d.Identity, d.Tokens))          // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Identity, d.Tokens))                // Login endpoint
	authGroup.POST("/admin/login", AdminLoginHandler(d.Identity, d.Tokens))     // Admin login endpoint
	authGroup.GET("/profile", auth, userOnly, GetProfileHandler(d.Identity))    // Current user
	authGroup.PUT("/profile", auth, userOnly, UpdateProfileHandler(d.Identity)) // Profile update
	authGroup.GET("/admin/profile", auth, adminOnly, GetAdminProfileHandler(d.Identity))
	authGroup.PUT("/admin/profile", auth, adminOnly, UpdateAdminProfileHandler(d.Identity))

	// Order routes
	orderGroup := apiGroup.Group("/orders", auth)
	orderGroup.GET("/admin/all", adminOnly, ListAllOrdersHandler(d.Orders, cache))                 // All orders
	orderGroup.PUT("/admin/:orderId/status", adminOnly, UpdateOrderStatusHandler(d.Orders, cache)) // Status change
	orderGroup.POST("", userOnly, PlaceOrderHandler(d.Identity, d.Orders, cache))                  // Place order
	orderGroup.GET("/user", userOnly, ListMyOrdersHandler(d.Orders, cache))                        // My orders
	orderGroup.GET("/:orderId", userOnly, GetOrderHandler(d.Orders))                               // Tracking page
	orderGroup.GET("/:orderId/qr", userOnly, OrderQRHandler(d.Orders))                             // Tracking QR code
	orderGroup.PUT("/:orderId", userOnly, ModifyOrderHandler(d.Orders, cache))                     // Modify pending order
	orderGroup.DELETE("/:orderId", userOnly, CancelOrderHandler(d.Orders, cache))                  // Cancel pending order

	// Support routes
	supportGroup := apiGroup.Group("/support/tickets", auth)
	supportGroup.POST("", userOnly, CreateTicketHandler(d.Identity, d.Support, cache))
	supportGroup.GET("/user", userOnly, ListMyTicketsHandler(d.Support, cache))
	supportGroup.GET("/admin/all", adminOnly, ListAllTicketsHandler(d.Support, cache))
	supportGroup.PUT("/admin/:ticketId/reply", adminOnly, ReplyTicketHandler(d.Support, cache))
	supportGroup.PUT("/admin/:ticketId/resolve", adminOnly, ResolveTicketHandler(d.Support, cache))

	// Contact routes
	apiGroup.POST("/contact", SubmitContactHandler(d.Contacts, cache))
	apiGroup.GET("/contact/admin/all", auth, adminOnly, ListContactsHandler(d.Contacts, cache))

	return r
}
