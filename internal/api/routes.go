package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/playbonspiel/backend/internal/api/handlers"
	"github.com/playbonspiel/backend/internal/config"
	"github.com/playbonspiel/backend/internal/middleware"
	"github.com/playbonspiel/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// No-cache middleware MUST be first in development
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] Aggressive no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(db, rdb))

		// Simulation endpoints
		sim := v1.Group("/sim")
		{
			sim.POST("/throw", handlers.SimulateThrow(cfg))
			sim.POST("/all", handlers.SimulateEnd(db, cfg))
			sim.GET("/runs/:id/csv", handlers.ExportRunCSV(db))
			sim.GET("/ws", ws.HandleSimSocket(cfg))
		}

		// Position evaluation
		v1.POST("/eval", handlers.EvaluateHouse(rdb, cfg))

		// Saved positions
		positions := v1.Group("/positions")
		{
			positions.POST("", handlers.CreatePosition(db))
			positions.GET("", handlers.ListPositions(db))
			positions.GET("/:id", handlers.GetPosition(db))
			positions.DELETE("/:id", handlers.RequireAdmin(cfg), handlers.DeletePosition(db))
		}

		// Admin session
		v1.POST("/admin/login", handlers.AdminLogin(db, cfg))
	}
}
