package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/observability"
	"github.com/ventry/ventry/internal/server/http/handlers"
	"github.com/ventry/ventry/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger, checks ...handlers.HealthChecker) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(observability.MetricsMiddleware())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade)
	managerHandler := handlers.NewManagerHandler(facade)
	carHandler := handlers.NewCarHandler(facade)
	categoryHandler := handlers.NewCategoryHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	healthHandler := handlers.NewHealthHandler(checks...)

	staffOnly := middleware.AuthRequired(facade, model.RoleSuperadmin, model.RoleManager)
	superadminOnly := middleware.AuthRequired(facade, model.RoleSuperadmin)
	customerOnly := middleware.AuthRequired(facade, model.RoleCustomer)

	api := engine.Group("/api")

	api.POST("/auth/login", authHandler.Login)

	customers := api.Group("/customers")
	customers.POST("/signup", customerHandler.Signup)
	customers.POST("/verify-otp", customerHandler.VerifyOTP)
	customers.POST("/resend-otp", customerHandler.ResendOTP)

	managers := api.Group("/managers", superadminOnly)
	managers.POST("", managerHandler.Create)
	managers.GET("", managerHandler.List)
	managers.DELETE("/:email", managerHandler.Delete)

	cars := api.Group("/cars")
	cars.GET("", carHandler.List)
	cars.GET("/:id", carHandler.Get)
	cars.POST("", staffOnly, carHandler.Create)
	cars.PATCH("/:id", staffOnly, carHandler.Update)
	cars.DELETE("/:id", staffOnly, carHandler.Delete)
	cars.POST("/:id/photos", staffOnly, carHandler.AddPhotos)
	cars.DELETE("/:id/photos", staffOnly, carHandler.RemovePhoto)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", staffOnly, categoryHandler.Create)
	categories.PATCH("/:id", staffOnly, categoryHandler.Update)
	categories.DELETE("/:id", staffOnly, categoryHandler.Delete)

	purchases := api.Group("/purchases")
	purchases.POST("", customerOnly, purchaseHandler.Initiate)
	purchases.GET("/callback", purchaseHandler.Callback)
	purchases.POST("/webhook", purchaseHandler.Webhook)
	purchases.GET("/:reference", customerOnly, purchaseHandler.Get)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}
