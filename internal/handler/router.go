package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/malekjani/devops-capstone-project/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the router. Body-carrying verbs
// are guarded by the JSON content-type check.
func RegisterRoutes(router *gin.Engine, h *AccountHandler) {
	router.GET("/health", Health)
	router.GET("/", Index)

	accounts := router.Group("/accounts")
	{
		accounts.POST("", middleware.RequireJSON(), h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", middleware.RequireJSON(), h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
}
