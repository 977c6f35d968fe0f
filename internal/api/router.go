package api

import (
	"github.com/gin-gonic/gin"

	"github.com/davey/lotvoice/internal/api/handler"
	"github.com/davey/lotvoice/internal/api/middleware"
	"github.com/davey/lotvoice/internal/config"
	"github.com/davey/lotvoice/internal/service"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(
	generator *service.Generator,
	archiver *service.Archiver,
	assetRoot string,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	generateHandler := handler.NewGenerateHandler(generator)
	archiveHandler := handler.NewArchiveHandler(archiver)

	// Health check stays outside the keyed group
	r.GET("/health", healthHandler.Health)

	// Generated audio is served statically, namespaced by batch ID
	r.Static("/files", assetRoot)

	// Mutating endpoints, gated by the shared key when one is configured
	keyed := r.Group("/", middleware.AppKey(cfg.Auth.AppKey))
	{
		keyed.POST("/generate", generateHandler.Generate)
		keyed.POST("/zip", archiveHandler.Zip)
	}

	return r
}
