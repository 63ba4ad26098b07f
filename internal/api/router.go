package api

import (
	"context"
	"net/http"
	"time"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/service"
	"github.com/campus-housing-api/pkg/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RouterDeps are the optional collaborators of the router
type RouterDeps struct {
	Limiter *ratelimit.Limiter
	DB      HealthChecker
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, deps RouterDeps) *gin.Engine {
	// Set Gin mode
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(&cfg.Server))
	router.Use(errorMiddleware(&cfg.Server))

	// Handlers
	authHandler := NewAuthHandler(services, cfg, log)
	housingHandler := NewHousingHandler(services, log)
	importHandler := NewImportHandler(services, log)

	requireAuth := authMiddleware(services.Auth, cfg.Auth.CookieName)
	limit := rateLimitMiddleware(deps.Limiter, log)

	// Health check
	router.GET("/health", healthCheck(deps.DB))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", limit, authHandler.Register)
			auth.POST("/login", limit, authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		v1.GET("/stats", housingHandler.Stats)

		logements := v1.Group("/logements")
		{
			logements.GET("", housingHandler.RoomCounts)
			logements.GET("/detail_chambre", housingHandler.RoomDetails)
		}

		v1.GET("/fillTable/:filename", requireAuth, importHandler.FillTable)
		v1.POST("/import/:table", requireAuth, importHandler.Upload)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "campus-housing-api",
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = err.Error()
			}
		}

		c.JSON(status, body)
	}
}

// corsMiddleware allows the configured front-end origins with credentials
func corsMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
