package http

import (
	"time"

	"hazard_duel/internal/config"
	"hazard_duel/internal/http/handlers"
	"hazard_duel/internal/http/middleware"
	"hazard_duel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles what the routes need.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config) {
	h := deps.Handler
	auth := middleware.JWT(h.Tokens)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", deps.Health.Health)
	r.GET("/healthz", deps.Health.Liveness)
	r.GET("/readyz", deps.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, apiRateWindow))
	{
		v1.POST("/auth/login", h.Login)

		v1.GET("/me", auth, h.Me)
		v1.GET("/me/games", auth, h.MyGames)

		// Game actions limited per player
		gameRL := middleware.GameRateLimit(cfg.APIRateLimit, apiRateWindow)
		v1.POST("/games", auth, gameRL, h.CreateGame)
		v1.POST("/games/:id/join", auth, gameRL, h.JoinGame)
		v1.GET("/games/:id", auth, h.GetGame)
		v1.GET("/games/:id/cells/:cell", auth, h.CanMove)
	}

	// Read-only status stream
	r.GET("/ws/games/:id", auth, ws.HandleStatus(deps.Hub, cfg.AllowedOrigin))
}

// CORS allows the configured origin (any origin when empty) with credentials.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowedOrigin == "" || origin == allowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
