package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Account REST API Service"
	serviceVersion = "1.0"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// Index returns service metadata at the root URL.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    serviceName,
		"version": serviceVersion,
	})
}
