package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, verifier auth.TokenVerifier, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	engine.Use(middleware.DecompressRequest(maxBodyBytes(cfg)))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade, logger)
	adminHandler := handlers.NewAdminHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/orders", orderHandler.Create)
	api.POST("/track-order", orderHandler.Track)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(verifier))
	admin.GET("/orders", adminHandler.List)
	admin.GET("/orders/:id", adminHandler.Get)
	admin.PUT("/orders/:id", adminHandler.Update)
	admin.POST("/orders/:id/reply", adminHandler.Reply)
	admin.GET("/stats", adminHandler.Stats)

	return engine
}

// Reply bodies carry base64 attachments, which grow by a third when encoded.
func maxBodyBytes(cfg *config.Config) int64 {
	return int64(cfg.MaxAttachmentBytes)*4 + 1<<20
}
