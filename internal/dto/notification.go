package dto

import "github.com/medtrain/progress-tracker-api/internal/models"

// SendNotificationsRequest selects roster records and a channel for one
// dispatch call. Dates are operator-entered and apply to the whole batch.
type SendNotificationsRequest struct {
	StudentIDs []string        `json:"student_ids" validate:"required,min=1"`
	Channel    string          `json:"channel" validate:"required"`
	Dates      models.OCSDates `json:"dates"`
}

// SendNotificationsResponse pairs the operator-facing message with the
// per-recipient breakdown.
type SendNotificationsResponse struct {
	Message string                 `json:"message"`
	Result  *models.DispatchResult `json:"result"`
}
