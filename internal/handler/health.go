package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by repository.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Version is reported by the banner route.
const Version = "1.0.0"

// Banner answers GET / so a browser hitting the API root sees it is alive.
func Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Jander Vidros inventory API",
		"version": Version,
	})
}

// Health returns a JSON health check response.
// Checks DB and, when configured, Redis; never exposes credentials or internals.
func Health(db Pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db.Ping(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		})
	}
}
