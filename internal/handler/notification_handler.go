package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
	"github.com/medtrain/progress-tracker-api/pkg/response"
)

type notificationService interface {
	Dispatch(ctx context.Context, req dto.SendNotificationsRequest) (*models.DispatchResult, error)
}

// NotificationHandler exposes the bulk dispatch endpoint.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler builds a new handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Send godoc
// @Summary Dispatch report notifications to selected students
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body dto.SendNotificationsRequest true "Dispatch payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req dto.SendNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dispatch payload"))
		return
	}

	result, err := h.service.Dispatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Mail(s) sent successfully!"
	if result.Channel == models.ChannelWhatsApp {
		message = "WhatsApp message(s) sent successfully!"
	}
	response.JSON(c, http.StatusOK, dto.SendNotificationsResponse{Message: message, Result: result})
}
