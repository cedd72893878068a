package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
)

type stubNotificationService struct {
	result  *models.DispatchResult
	err     error
	lastReq dto.SendNotificationsRequest
}

func (s *stubNotificationService) Dispatch(_ context.Context, req dto.SendNotificationsRequest) (*models.DispatchResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func buildNotificationRouter(svc *stubNotificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/notifications/send", NewNotificationHandler(svc).Send)
	return router
}

func TestSendEmail(t *testing.T) {
	svc := &stubNotificationService{result: &models.DispatchResult{
		Channel: models.ChannelEmail, Requested: 2, Attempted: 2, Sent: 2,
		Outcomes: []models.RecipientOutcome{
			{StudentID: "a", Sent: true},
			{StudentID: "b", Sent: true},
		},
	}}
	router := buildNotificationRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/notifications/send",
		bytes.NewBufferString(`{"student_ids":["a","b"],"channel":"email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Mail(s) sent successfully!")
	require.Contains(t, resp.Body.String(), `"sent":2`)
	require.Equal(t, []string{"a", "b"}, svc.lastReq.StudentIDs)
}

func TestSendWhatsAppMessage(t *testing.T) {
	svc := &stubNotificationService{result: &models.DispatchResult{
		Channel: models.ChannelWhatsApp, Requested: 1, Attempted: 1, Sent: 1,
		Outcomes: []models.RecipientOutcome{{StudentID: "a", Sent: true}},
	}}
	router := buildNotificationRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/notifications/send",
		bytes.NewBufferString(`{"student_ids":["a"],"channel":"whatsapp","dates":{"ocs1":"02/08/2025"}}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "WhatsApp message(s) sent successfully!")
	require.Equal(t, "02/08/2025", svc.lastReq.Dates.OCS1)
}

func TestSendMalformedBody(t *testing.T) {
	router := buildNotificationRouter(&stubNotificationService{})

	req, _ := http.NewRequest(http.MethodPost, "/notifications/send", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrValidation.Code)
}

func TestSendNoRecipients(t *testing.T) {
	svc := &stubNotificationService{err: appErrors.Clone(appErrors.ErrNoRecipients, "no valid recipients, check for missing phone numbers for WhatsApp")}
	router := buildNotificationRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/notifications/send",
		bytes.NewBufferString(`{"student_ids":["a"],"channel":"whatsapp"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrNoRecipients.Code)
	require.Contains(t, resp.Body.String(), "missing phone numbers")
}

func TestSendDispatchFailed(t *testing.T) {
	svc := &stubNotificationService{err: appErrors.Clone(appErrors.ErrDispatchFailed, "failed to send email notifications")}
	router := buildNotificationRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/notifications/send",
		bytes.NewBufferString(`{"student_ids":["a"],"channel":"email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadGateway, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrDispatchFailed.Code)
}
