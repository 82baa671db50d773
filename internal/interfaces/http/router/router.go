package router

import (
	"time"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/stitchdesk/backend/internal/infrastructure/auth"
	applogger "github.com/stitchdesk/backend/internal/infrastructure/logger"
	"github.com/stitchdesk/backend/internal/interfaces/http/handler"
	"github.com/stitchdesk/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Customer   *handler.CustomerHandler
	Jobber     *handler.JobberHandler
	Outfit     *handler.OutfitHandler
	Attachment *handler.AttachmentHandler
	Draft      *handler.DraftHandler
	Order      *handler.OrderHandler
	Payment    *handler.PaymentHandler
}

// Config carries router dependencies
type Config struct {
	Logger       *zap.Logger
	JWTService   *auth.JWTService
	Handlers     Handlers
	CORSOrigins  []string
	MaxBodyBytes int64
	// RateLimit caps list/search requests per client per window.
	// Zero disables rate limiting.
	RateLimit       int
	RateLimitWindow time.Duration
}

// New builds the gin engine with the full middleware chain and all
// API routes mounted under /api/v1.
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()

	engine.Use(middleware.RequestID())
	if cfg.Logger != nil {
		engine.Use(applogger.GinMiddleware(cfg.Logger))
		engine.Use(applogger.Recovery(cfg.Logger))
	} else {
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	h := cfg.Handlers

	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)

	api := engine.Group("/api/v1")
	api.GET("/health", h.Health.Health)

	if cfg.JWTService != nil {
		jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtCfg.Logger = cfg.Logger
		api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	}

	var searchLimit gin.HandlerFunc
	if cfg.RateLimit > 0 {
		window := cfg.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		searchLimit = middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, window))
	} else {
		searchLimit = func(c *gin.Context) { c.Next() }
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	users := api.Group("/users")
	{
		users.POST("", h.Auth.CreateUser)
		users.GET("", h.Auth.ListUsers)
		users.POST("/me/password", h.Auth.ChangePassword)
		users.POST("/:id/deactivate", h.Auth.DeactivateUser)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", searchLimit, h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.POST("/:id/activate", h.Customer.Activate)
		customers.POST("/:id/deactivate", h.Customer.Deactivate)
		customers.GET("/:id/payments", h.Payment.ListByCustomer)
	}

	jobbers := api.Group("/jobbers")
	{
		jobbers.POST("", h.Jobber.Create)
		jobbers.GET("", searchLimit, h.Jobber.List)
		jobbers.GET("/:id", h.Jobber.Get)
		jobbers.PUT("/:id", h.Jobber.Update)
		jobbers.POST("/:id/activate", h.Jobber.Activate)
		jobbers.POST("/:id/deactivate", h.Jobber.Deactivate)
	}

	outfits := api.Group("/outfits")
	{
		outfits.POST("", h.Outfit.Create)
		outfits.GET("", searchLimit, h.Outfit.List)
		outfits.GET("/:id", h.Outfit.Get)
		outfits.PUT("/:id", h.Outfit.Update)
		outfits.PUT("/:id/image", h.Outfit.SetImage)
		outfits.POST("/:id/activate", h.Outfit.Activate)
		outfits.POST("/:id/deactivate", h.Outfit.Deactivate)
		outfits.GET("/:id/measurement-fields", h.Outfit.ListMeasurementFields)
		outfits.PUT("/:id/measurement-fields", h.Outfit.ReplaceMeasurementFields)
	}

	attachments := api.Group("/attachments")
	{
		attachments.POST("/uploads", h.Attachment.InitiateUpload)
		attachments.GET("/download-url", h.Attachment.DownloadURL)
		attachments.DELETE("", h.Attachment.Delete)
	}

	draft := api.Group("/draft")
	{
		draft.GET("", h.Draft.Get)
		draft.POST("/submit", h.Draft.Submit)
		draft.PUT("/customer", h.Draft.SelectCustomer)
		draft.DELETE("/customer", h.Draft.ClearCustomer)
		draft.POST("/instances", h.Draft.AddInstance)
		draft.PATCH("/instances/:instanceId", h.Draft.UpdateInstance)
		draft.DELETE("/instances/:instanceId", h.Draft.RemoveInstance)
		draft.POST("/instances/:instanceId/costs", h.Draft.AddCost)
		draft.DELETE("/instances/:instanceId/costs/:index", h.Draft.RemoveCost)
		draft.POST("/instances/:instanceId/attachments", h.Draft.AddAttachment)
		draft.DELETE("/instances/:instanceId/attachments/:index", h.Draft.RemoveAttachment)
		draft.PUT("/instances/:instanceId/stitch-options", h.Draft.SetStitchOption)
		draft.GET("/instances/:instanceId/measurements", h.Draft.OpenMeasurements)
		draft.PUT("/instances/:instanceId/measurements", h.Draft.SaveMeasurements)
	}

	ordersGroup := api.Group("/orders")
	{
		ordersGroup.GET("", searchLimit, h.Order.List)
		ordersGroup.GET("/status-counts", h.Order.StatusCounts)
		ordersGroup.GET("/by-number/:number", h.Order.GetByNumber)
		ordersGroup.GET("/:id", h.Order.Get)
		ordersGroup.GET("/:id/balance", h.Payment.OrderBalance)
		ordersGroup.POST("/:id/start", h.Order.Start)
		ordersGroup.POST("/:id/ready", h.Order.MarkReady)
		ordersGroup.POST("/:id/deliver", h.Order.Deliver)
		ordersGroup.POST("/:id/cancel", h.Order.Cancel)
		ordersGroup.PUT("/:id/details/:detailId/jobber", h.Order.AssignJobber)
		ordersGroup.DELETE("/:id/details/:detailId/jobber", h.Order.UnassignJobber)
	}

	payments := api.Group("/payments")
	{
		payments.POST("", h.Payment.Record)
		payments.POST("/:id/void", h.Payment.Void)
	}

	return engine
}
