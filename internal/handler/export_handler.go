package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrain/progress-tracker-api/internal/service"
	"github.com/medtrain/progress-tracker-api/pkg/response"
)

type exportService interface {
	Render(format string) (*service.ExportDocument, error)
}

// ExportHandler serves roster downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Download godoc
// @Summary Download the classified roster
// @Tags Roster
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /roster/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	doc, err := h.service.Render(c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
