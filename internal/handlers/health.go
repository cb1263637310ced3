package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/pkg/response"
)

// Health answers liveness probes with the service name and server time.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":  "ok",
			"service": "dealdock",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
