package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health godoc
// @Summary      Health check
// @Description  Verifica conectividade com Postgres e Redis.
// @Tags         health
// @Produce      json
// @Success      200
// @Failure      503
// @Router       /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "indisponivel"
		}

		fila := "ok"
		if rdb.Ping(ctx).Err() != nil {
			fila = "indisponivel"
		}

		status := http.StatusOK
		if postgres != "ok" || fila != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"postgres": postgres,
			"fila":     fila,
		})
	}
}
