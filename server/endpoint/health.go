package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/component"
)

// HealthChecker reports the health of every registered component.
type HealthChecker func(ctx context.Context) []component.Health

type healthBody struct {
	Status     component.HealthStatus `json:"status"`
	Service    string                 `json:"service"`
	Timestamp  string                 `json:"timestamp"`
	Components []component.Health     `json:"components"`
}

// Health serves the overall status and each component's health. Degraded
// still answers 200; any unhealthy component answers 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := healthBody{Service: serviceName, Timestamp: time.Now().UTC().Format(time.RFC3339)}
		if checker != nil {
			body.Components = checker(c.Request.Context())
		}
		body.Status = component.Overall(body.Components)

		code := http.StatusOK
		if body.Status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, body)
	}
}
