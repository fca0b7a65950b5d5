package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"poolbook/internal/api"
	"poolbook/internal/db"
)

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// DBHealth godoc
// @Summary      Database connectivity probe
// @Description  Pings the database and reports its server version. Never includes credentials.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.DBHealthResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /health/db [get]
func DBHealth(database *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		version, err := db.ServerVersion(c.Request.Context(), database)
		if err != nil {
			api.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, api.DBHealthResponse{Status: "ok", Database: version})
	}
}
