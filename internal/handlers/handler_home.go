package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthCheck reports service liveness.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
