package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estall/marketplace-api/internal/api/handler"
	"github.com/estall/marketplace-api/internal/api/middleware"
	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
	"github.com/estall/marketplace-api/internal/core/service"
	mongodb "github.com/estall/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/estall/marketplace-api/internal/infrastructure/db/redis"
)

// Options carries everything the router needs beyond its store handles.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Publisher ports.EventPublisher
	Intents   ports.IntentClient
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	dedup := redisdb.NewTxDedup(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL)
	userService := service.NewUserService(userRepo, opts.Logger)
	catalogService := service.NewCatalogService(productRepo, opts.Logger)
	bookingService := service.NewBookingService(bookingRepo, opts.Logger)
	paymentService := service.NewPaymentService(
		paymentRepo, bookingRepo, productRepo, reportRepo,
		dedup, opts.Intents, opts.Publisher, opts.Logger,
	)
	reportService := service.NewReportService(reportRepo, productRepo, opts.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(catalogService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)

	auth := middleware.Auth(opts.JWTSecret)
	buyerOnly := middleware.RBAC(userService, domain.RoleBuyer)
	sellerOnly := middleware.RBAC(userService, domain.RoleSeller)
	adminOnly := middleware.RBAC(userService, domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/sessions", authHandler.CreateSession)
	e.POST("/users", authHandler.Register)
	e.GET("/users/buyers/check", userHandler.CheckBuyer)
	e.GET("/users/sellers/check", userHandler.CheckSeller)
	e.GET("/users/admins/check", userHandler.CheckAdmin)
	e.GET("/categories/:id", productHandler.ListByCategory)
	e.GET("/advertisedProducts", productHandler.ListAdvertised)

	// --- Admin routes ---
	e.GET("/users/buyers", userHandler.ListBuyers, auth, adminOnly)
	e.GET("/users/sellers", userHandler.ListSellers, auth, adminOnly)
	e.PATCH("/users/buyers/:id", userHandler.Verify, auth, adminOnly)
	e.PATCH("/users/sellers/:id", userHandler.Verify, auth, adminOnly)
	e.DELETE("/users/buyers/:id", userHandler.Delete, auth, adminOnly)
	e.DELETE("/users/sellers/:id", userHandler.Delete, auth, adminOnly)
	e.GET("/reports", reportHandler.List, auth, adminOnly)
	e.DELETE("/reports/:id", reportHandler.Resolve, auth, adminOnly)

	// --- Seller routes ---
	e.GET("/products", productHandler.ListMine, auth, sellerOnly)
	e.POST("/products", productHandler.Create, auth, sellerOnly)
	e.PATCH("/products/:id", productHandler.Advertise, auth, sellerOnly)
	e.DELETE("/products/:id", productHandler.Delete, auth, sellerOnly)

	// --- Buyer routes ---
	e.POST("/bookings", bookingHandler.Create, auth, buyerOnly)
	e.GET("/bookings", bookingHandler.List, auth, buyerOnly)
	e.GET("/bookings/:id", bookingHandler.Get, auth, buyerOnly)
	e.DELETE("/bookings/:id", bookingHandler.Delete, auth, buyerOnly)
	e.POST("/payment-intents", paymentHandler.CreateIntent, auth, buyerOnly)
	e.POST("/payments", paymentHandler.Submit, auth, buyerOnly)
	e.POST("/reports", reportHandler.File, auth, buyerOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
