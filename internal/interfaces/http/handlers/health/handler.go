package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sonar/internal/shared/version"
)

// Handler serves liveness information.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check handles GET /health
// @Summary Health check
// @Description Report service liveness and build version
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sonar",
		"version": version.String(),
	})
}
