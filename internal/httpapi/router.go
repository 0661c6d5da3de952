package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordgrid/crossgen/internal/authsvc"
	"github.com/wordgrid/crossgen/internal/middleware"
	"github.com/wordgrid/crossgen/internal/realtime"
	"github.com/wordgrid/crossgen/internal/store"
	"github.com/wordgrid/crossgen/pkg/puzzle"
)

// NewRouter builds the gin engine for crossgen serve, mirroring the
// teacher's cmd/server/main.go route grouping (health/metrics, grouped
// API routes, protected vs. public groups).
func NewRouter(st *store.Store, auth *authsvc.Service, generator *puzzle.Generator, hub *realtime.Hub) *gin.Engine {
	handlers := NewHandlers(st, auth, generator, hub, nil)
	authMiddleware := middleware.NewAuthMiddleware(auth)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.PerformanceMonitor())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetMetrics())
	})

	router.POST("/login", handlers.Login)

	puzzles := router.Group("/puzzles")
	puzzles.Use(authMiddleware.RequireAuth())
	{
		puzzles.POST("", handlers.CreatePuzzle)
		puzzles.GET("/:id", handlers.GetPuzzle)
		puzzles.GET("/:id/stream", handlers.StreamPuzzle)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "API endpoint does not exist",
			"path":    c.Request.URL.Path,
		})
	})

	return router
}
