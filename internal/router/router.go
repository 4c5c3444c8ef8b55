package router

import (
	"context"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jandervidros/internal/config"
	"jandervidros/internal/handler"
	"jandervidros/internal/infra"
	"jandervidros/internal/middleware"
	"jandervidros/internal/repository"
	"jandervidros/internal/service"
)

// Deps are the process-wide resources the API is built on. Redis and Queue
// are nil when REDIS_URL is empty.
type Deps struct {
	Config *config.Config
	Store  *repository.Store
	Redis  *redis.Client
	Queue  service.ReceiptQueue
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store
// ctx bounds the background goroutines of the rate limiters.
func New(ctx context.Context, deps Deps) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.NewRateLimiter(ctx, "api", 1000, time.Minute,
		"Too many requests, try again later").Handler())

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(deps.Store)
	transactionRepo := repository.NewTransactionRepository(deps.Store)
	statsRepo := repository.NewStatisticsRepository(deps.Store)
	serviceOrderRepo := repository.NewServiceOrderRepository(deps.Store)
	appointmentRepo := repository.NewAppointmentRepository(deps.Store)
	credentialRepo := repository.NewCredentialRepository(deps.Store)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo)
	transactionSvc := service.NewTransactionService(transactionRepo, deps.Queue)
	statsSvc := service.NewStatisticsService(statsRepo)
	serviceOrderSvc := service.NewServiceOrderService(serviceOrderRepo)
	appointmentSvc := service.NewAppointmentService(appointmentRepo)
	authSvc := service.NewAuthService(credentialRepo, cfg)
	receiptSvc := service.NewReceiptService(transactionRepo, serviceOrderRepo, infra.NewReceipt(cfg.BusinessName))

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	transactionsH := handler.NewTransactionsHandler(transactionSvc, receiptSvc)
	statsH := handler.NewStatisticsHandler(statsSvc)
	servicesH := handler.NewServicesHandler(serviceOrderSvc, receiptSvc)
	appointmentsH := handler.NewAppointmentsHandler(appointmentSvc)
	authH := handler.NewAuthHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/", handler.Banner)
	r.GET("/health", handler.Health(deps.Store, deps.Redis))

	loginLimiter := middleware.NewRateLimiter(ctx, "login", 5, time.Minute,
		"Too many login attempts, wait a minute")
	r.POST("/api/auth/login", loginLimiter.Handler(), authH.Login)

	api := r.Group("/api")
	if cfg.AuthEnabled {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		api.PUT("/auth/credentials", authH.ChangeCredentials)

		products := api.Group("/products")
		{
			products.GET("", productsH.List)
			products.POST("", productsH.Create)
			// static segments are registered before /:id
			products.GET("/low-stock", productsH.LowStock)
			products.GET("/category/:category", productsH.ByCategory)
			products.GET("/search/:term", productsH.Search)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		api.GET("/statistics", statsH.Statistics)
		api.GET("/dashboard", statsH.Dashboard)

		transactions := api.Group("/transactions")
		{
			transactions.GET("", transactionsH.List)
			transactions.POST("", transactionsH.Create)
			transactions.GET("/:id", transactionsH.Get)
			transactions.DELETE("/:id", transactionsH.Delete)
			transactions.GET("/:id/receipt", transactionsH.Receipt)
		}

		services := api.Group("/services")
		{
			services.GET("", servicesH.List)
			services.POST("", servicesH.Create)
			services.GET("/:id", servicesH.Get)
			services.PUT("/:id", servicesH.Update)
			services.DELETE("/:id", servicesH.Delete)
			services.PATCH("/:id/toggle-status", servicesH.ToggleStatus)
			services.GET("/:id/receipt", servicesH.Receipt)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentsH.List)
			appointments.POST("", appointmentsH.Create)
			appointments.GET("/:id", appointmentsH.Get)
			appointments.DELETE("/:id", appointmentsH.Delete)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
