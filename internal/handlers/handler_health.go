package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck pings one backing service.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// health godoc
// @Summary Health check
// @Description Reports the connectivity of every configured backing service
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func health(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{}
		for _, check := range checks {
			result := "connected"
			if err := check.Ping(ctx); err != nil {
				result = "error"
				status = http.StatusServiceUnavailable
			}
			body[check.Name] = result
		}
		body["ok"] = status == http.StatusOK

		c.JSON(status, body)
	}
}
