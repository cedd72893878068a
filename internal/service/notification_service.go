package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
	"github.com/medtrain/progress-tracker-api/pkg/mail"
)

type notifyStore interface {
	Filter(ids []string) []models.Student
}

type emailComposer interface {
	Compose(p models.ReportPayload) (mail.Message, error)
}

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

type templateSender interface {
	SendTemplate(ctx context.Context, p models.ReportPayload) error
}

// NotificationService fans report notifications out to a selected set of
// roster records over one channel per call.
type NotificationService struct {
	store     notifyStore
	composer  emailComposer
	mailer    mailSender
	whatsapp  templateSender
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationService constructs the dispatcher.
func NewNotificationService(store notifyStore, composer emailComposer, mailer mailSender, whatsapp templateSender, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{store: store, composer: composer, mailer: mailer, whatsapp: whatsapp, validator: validate, metrics: metrics, logger: logger}
}

// Dispatch resolves the selection, applies channel filtering and sends one
// message per surviving recipient concurrently. The call returns only after
// every send has settled; a failing recipient never cancels its siblings.
// Per-recipient failures are logged and surfaced in the breakdown without
// failing the call; the aggregate becomes an error only when the channel
// delivered nothing at all.
func (s *NotificationService) Dispatch(ctx context.Context, req dto.SendNotificationsRequest) (*models.DispatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}

	channel := models.Channel(req.Channel)
	if !channel.Valid() {
		return nil, appErrors.Clone(appErrors.ErrChannelUnknown, fmt.Sprintf("unknown notification channel %q", req.Channel))
	}

	selected := s.store.Filter(req.StudentIDs)
	if len(selected) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoRecipients, "none of the selected students are on the roster")
	}

	// Channel preconditions are checked before any network call.
	targets := selected
	if channel == models.ChannelWhatsApp {
		targets = withPhone(selected)
		if len(targets) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoRecipients, "no valid recipients, check for missing phone numbers for WhatsApp")
		}
	}

	batchID := uuid.NewString()
	started := time.Now()
	s.logger.Info("dispatch started",
		zap.String("batch_id", batchID),
		zap.String("channel", string(channel)),
		zap.Int("selected", len(selected)),
		zap.Int("targets", len(targets)),
	)

	outcomes := make([]models.RecipientOutcome, len(targets))
	var wg sync.WaitGroup
	for i, student := range targets {
		wg.Add(1)
		go func(i int, student models.Student) {
			defer wg.Done()
			outcomes[i] = s.sendOne(ctx, channel, student, req.Dates, batchID)
		}(i, student)
	}
	wg.Wait()

	result := &models.DispatchResult{
		Channel:   channel,
		Requested: len(selected),
		Attempted: len(targets),
		Outcomes:  outcomes,
	}
	for _, outcome := range outcomes {
		if outcome.Sent {
			result.Sent++
		} else {
			result.Failed++
		}
		if s.metrics != nil {
			s.metrics.ObserveSend(channel, outcome.Sent)
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveDispatch(channel, time.Since(started))
	}

	s.logger.Info("dispatch settled",
		zap.String("batch_id", batchID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(started)),
	)

	if result.Sent == 0 {
		return result, appErrors.Wrap(
			fmt.Errorf("%s", firstError(outcomes)),
			appErrors.ErrDispatchFailed.Code,
			appErrors.ErrDispatchFailed.Status,
			fmt.Sprintf("failed to send %s notifications", channel),
		)
	}

	return result, nil
}

func (s *NotificationService) sendOne(ctx context.Context, channel models.Channel, student models.Student, dates models.OCSDates, batchID string) models.RecipientOutcome {
	payload := buildPayload(student, dates)

	outcome := models.RecipientOutcome{
		StudentID: student.ID,
		Name:      student.Name,
	}

	var err error
	switch channel {
	case models.ChannelEmail:
		outcome.Address = student.Email
		var msg mail.Message
		if msg, err = s.composer.Compose(payload); err == nil {
			err = s.mailer.Send(ctx, msg)
		}
	case models.ChannelWhatsApp:
		outcome.Address = student.Phone
		err = s.whatsapp.SendTemplate(ctx, payload)
	}

	if err != nil {
		outcome.Error = err.Error()
		s.logger.Warn("send failed",
			zap.String("batch_id", batchID),
			zap.String("channel", string(channel)),
			zap.String("student_id", student.ID),
			zap.Error(err),
		)
		return outcome
	}

	outcome.Sent = true
	return outcome
}

// buildPayload is the channel-agnostic projection handed to the adapters.
func buildPayload(student models.Student, dates models.OCSDates) models.ReportPayload {
	return models.ReportPayload{
		Name:              student.Name,
		Email:             student.Email,
		Phone:             student.Phone,
		Status:            student.Status,
		ChapterCompletion: fmt.Sprintf("%d/%d", student.CompletedChapters, student.TotalChapters),
		Marks:             student.Marks,
		MaxMarks:          student.MaxMarks,
		Skipped:           student.Skipped,
		OCS1Status:        student.OCS1,
		OCS2Status:        student.OCS2,
		OCS1Date:          dates.OCS1,
		OCS2Date:          dates.OCS2,
	}
}

func withPhone(students []models.Student) []models.Student {
	eligible := make([]models.Student, 0, len(students))
	for _, s := range students {
		if s.HasPhone() {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

func firstError(outcomes []models.RecipientOutcome) string {
	for _, o := range outcomes {
		if o.Error != "" {
			return o.Error
		}
	}
	return "no sends attempted"
}
