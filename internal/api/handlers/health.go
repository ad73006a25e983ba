package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

var startedAt = time.Now()

// HealthCheck reports service liveness plus backing-store reachability.
func HealthCheck(db *sqlx.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":   "ok",
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
			"database": "ok",
			"redis":    "ok",
		}
		code := http.StatusOK

		if db == nil {
			status["database"] = "not configured"
		} else if err := db.PingContext(c.Request.Context()); err != nil {
			status["database"] = "unreachable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		if rdb == nil {
			status["redis"] = "not configured"
		} else if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "unreachable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, status)
	}
}
