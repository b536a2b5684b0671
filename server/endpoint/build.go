package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/version"
)

var processStart = time.Now()

type infoBody struct {
	Service string `json:"service"`
	*version.Info
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Version serves the build information.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersionInfo())
	}
}

// Info serves the build information together with the service name and the
// process uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, infoBody{
			Service:   serviceName,
			Info:      version.GetVersionInfo(),
			Uptime:    now.Sub(processStart).Round(time.Second).String(),
			Timestamp: now.UTC().Format(time.RFC3339),
		})
	}
}
