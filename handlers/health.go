package handlers

import (
	"net/http"

	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency probe.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{
		"status":    state,
		"checks":    status.Checks,
		"checkedAt": status.CheckedAt,
	})
}
