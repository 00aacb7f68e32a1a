package routes

import (
	"net/http"
	"time"

	"mentorhub/handlers"
	"mentorhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers all endpoints for the session engine.
func RegisterSessionRoutes(r *gin.Engine, sh *handlers.SessionHandler) {
	sessions := r.Group("/api/sessions")
	{
		sessions.POST("/book", sh.BookSession)
		sessions.POST("/join", sh.JoinSession)
		sessions.POST("/end", sh.EndSession)
		sessions.GET("/:id", sh.GetSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SessionHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, sh)
	RegisterHealthRoute(r)
}
