package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/config"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/engine"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/handler"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/middleware"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
)

// SetupRouter wires middleware and routes onto a gin engine.
func SetupRouter(cfg *config.Config, st *store.Store, eng *engine.Engine) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mobilite Backend API is running",
		})
	})

	answerHandler := handler.NewAnswerHandler(eng)
	datasetHandler := handler.NewDatasetHandler(st)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.AuthJWTSecret))
	{
		api.POST("/answer", answerHandler.Answer)
		api.GET("/datasets", datasetHandler.Summary)
	}

	return r
}
