package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medtrain/progress-tracker-api/internal/service"
)

// MetricsHandler exposes the Prometheus endpoint.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler builds a new handler.
func NewMetricsHandler(service *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

// Prometheus godoc
// @Summary Prometheus exposition endpoint
// @Tags Observability
// @Produce plain
// @Success 200
// @Router /metrics [get]
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.service.Handler().ServeHTTP(c.Writer, c.Request)
}
