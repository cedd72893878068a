package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
	"github.com/medtrain/progress-tracker-api/pkg/response"
)

type rosterService interface {
	Ingest(filename string, data []byte) (*dto.RosterResponse, error)
	Roster() *dto.RosterResponse
	Add(req dto.SaveStudentRequest) (*models.Student, error)
	Edit(id string, req dto.SaveStudentRequest) (*models.Student, error)
	Thresholds() models.Thresholds
	UpdateThresholds(req dto.ThresholdsRequest) *dto.RosterResponse
	Reset()
}

// RosterHandler exposes the session roster endpoints.
type RosterHandler struct {
	service        rosterService
	maxUploadBytes int64
}

// NewRosterHandler builds a new handler.
func NewRosterHandler(service rosterService, maxUploadBytes int64) *RosterHandler {
	return &RosterHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
// @Summary Upload a student progress workbook
// @Tags Roster
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} response.Envelope
// @Router /roster/upload [post]
func (h *RosterHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "a workbook file is required"))
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrPayloadTooLarge, ""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}

	roster, err := h.service.Ingest(fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// List godoc
// @Summary Current session roster
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *RosterHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Roster())
}

// Add godoc
// @Summary Add a student record
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.SaveStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /roster/students [post]
func (h *RosterHandler) Add(c *gin.Context) {
	var req dto.SaveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.service.Add(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Edit godoc
// @Summary Replace a student record
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.SaveStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /roster/students/{id} [put]
func (h *RosterHandler) Edit(c *gin.Context) {
	var req dto.SaveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.service.Edit(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Thresholds godoc
// @Summary Active classifier thresholds
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/thresholds [get]
func (h *RosterHandler) Thresholds(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Thresholds())
}

// UpdateThresholds godoc
// @Summary Replace thresholds and reclassify the roster
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.ThresholdsRequest true "Thresholds payload"
// @Success 200 {object} response.Envelope
// @Router /roster/thresholds [put]
func (h *RosterHandler) UpdateThresholds(c *gin.Context) {
	var req dto.ThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid thresholds payload"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.UpdateThresholds(req))
}

// Reset godoc
// @Summary Discard the session roster
// @Tags Roster
// @Success 204
// @Router /roster [delete]
func (h *RosterHandler) Reset(c *gin.Context) {
	h.service.Reset()
	response.NoContent(c)
}
