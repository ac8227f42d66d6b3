package router

import (
	"tailorshop/app/handler"
	"tailorshop/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	rosterHandler  *handler.RosterHandler
	garmentHandler *handler.GarmentHandler
	allowedOrigins []string
}

// NewRouter creates a new Router
func NewRouter(rosterHandler *handler.RosterHandler, garmentHandler *handler.GarmentHandler, allowedOrigins []string) *Router {
	return &Router{
		rosterHandler:  rosterHandler,
		garmentHandler: garmentHandler,
		allowedOrigins: allowedOrigins,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(r.allowedOrigins))
	engine.Use(middleware.Logger())

	api := engine.Group("/api/v1")
	{
		workers := api.Group("/workers")
		{
			workers.GET("", r.rosterHandler.ListWorkers)                // Canonical roster
			workers.GET("/displayed", r.rosterHandler.DisplayedWorkers) // Displayed list and view kind
			workers.POST("/reload", r.rosterHandler.Reload)             // Retry load
			workers.POST("", r.rosterHandler.CreateWorker)              // Create, then re-fetch
			workers.PATCH("/:id", r.rosterHandler.UpdateWorker)         // Local edit
			workers.DELETE("/:id", r.rosterHandler.DeleteWorker)        // Local delete
			workers.POST("/search", r.rosterHandler.Search)             // Debounced search keystroke
		}

		garmentRates := api.Group("/garment-rates")
		{
			garmentRates.POST("/add", r.garmentHandler.AddGarmentRate)
			garmentRates.POST("/remove", r.garmentHandler.RemoveGarmentRate)
		}
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
