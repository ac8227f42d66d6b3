package rosterd

import (
	"tailorshop/app/middleware"

	"github.com/gin-gonic/gin"
)

// Setup sets up the roster service routes. Every /api route requires a bearer
// token: the API key or an HS256 JWT signed with jwtSecret.
func Setup(engine *gin.Engine, h *Handler, apiKey, jwtSecret string) {
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	api := engine.Group("/api")
	api.Use(middleware.BearerAuth(apiKey, jwtSecret))
	{
		api.GET("/workers", h.ListWorkers)
		api.POST("/workers", h.CreateWorker)
		api.GET("/workers/search", h.SearchWorkers)
		api.GET("/workers/:id", h.GetWorker)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
