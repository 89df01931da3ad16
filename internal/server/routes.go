package server

import "github.com/gin-gonic/gin"

// registerRoutes sets up all endpoints.
func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	v1.GET("/actions", s.handleCatalogue)
	v1.POST("/actions/:name", s.handleInvoke)
}
