package routes

import (
	"net/http"

	"blog_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler group under /api.
func RegisterRoutes(r *gin.Engine, h *handlers.Registry) {
	api := r.Group("/api")

	h.Auth.RegisterRoutes(api)
	h.Posts.RegisterRoutes(api)
	h.Comment.RegisterRoutes(api)
	h.Users.RegisterRoutes(api)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
