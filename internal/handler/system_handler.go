package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is reported by the root descriptor.
const APIVersion = "1.0.0"

// SystemHandler serves the API descriptor and health endpoints.
type SystemHandler struct{}

// NewSystemHandler constructs a system handler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Root godoc
// @Summary API descriptor
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Planificador de Horarios API",
		"version": APIVersion,
		"endpoints": gin.H{
			"login":    "POST /auth/login",
			"subjects": "GET|POST /subjects, GET|PUT|DELETE /subjects/{id}",
		},
	})
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
