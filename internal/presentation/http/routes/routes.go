package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/config"
	domainRepo "github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/internal/presentation/http/handler"
	"github.com/sangkips/produce-store-api/internal/presentation/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product   *handler.ProductHandler
	Boleta    *handler.BoletaHandler
	Draft     *handler.DraftHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes. Background work
// started for the router stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	if deps.Cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if deps.Cfg.Import.MaxSize > 0 {
		router.MaxMultipartMemory = deps.Cfg.Import.MaxSize
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(deps.Cfg.Telemetry.ServiceName))
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		rateLimiter := middleware.NewClientRateLimiter(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond(),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		api := v1.Group("")
		api.Use(rateLimiter.Middleware())

		idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		})

		registerProductRoutes(api, h)
		registerBoletaRoutes(api, h, idempotency)
		registerDraftRoutes(api, h, idempotency)

		api.GET("/dashboard", h.Dashboard.GetStats)
		api.GET("/printer/status", h.Printer.GetStatus)
	}

	return router
}

func registerProductRoutes(api *gin.RouterGroup, h *Handlers) {
	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerBoletaRoutes(api *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	boletas := api.Group("/boletas")
	{
		boletas.GET("", h.Boleta.List)
		boletas.POST("", idempotency, h.Boleta.Create)
		boletas.GET("/export", h.Boleta.Export)
		boletas.GET("/:id", h.Boleta.Get)
		boletas.PUT("/:id", h.Boleta.Update)
		boletas.DELETE("/:id", h.Boleta.Delete)
		boletas.POST("/:id/print", h.Printer.PrintBoleta)
	}
}

func registerDraftRoutes(api *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	drafts := api.Group("/drafts")
	{
		drafts.POST("", h.Draft.Start)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Discard)
		drafts.POST("/:id/lines", h.Draft.AddLine)
		drafts.DELETE("/:id/lines/:product_id", h.Draft.RemoveLine)
		drafts.POST("/:id/commit", idempotency, h.Draft.Commit)
	}
}
