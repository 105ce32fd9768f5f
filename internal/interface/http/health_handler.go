package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/annonsera/backend/pkg/response"
)

// Health returns a handler that checks database reachability.
func Health(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var now time.Time
		if err := pool.QueryRow(c.Request.Context(), "SELECT now()").Scan(&now); err != nil {
			response.Error[any](c, http.StatusInternalServerError, "database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"time": now}, "ok", nil)
	}
}
