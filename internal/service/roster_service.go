package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/internal/roster"
	"github.com/medtrain/progress-tracker-api/internal/sheet"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
)

type rosterStore interface {
	Replace(students []models.Student, sourceFile string)
	List() []models.Student
	Get(id string) (models.Student, bool)
	Append(s models.Student)
	Update(s models.Student) bool
	Thresholds() models.Thresholds
	SetThresholds(t models.Thresholds) []models.Student
	SourceFile() string
	Reset()
}

type workbookParser interface {
	Parse(data []byte) ([]*sheet.Row, error)
}

// RosterService owns the session roster: ingest, operator edits, threshold
// changes and reset.
type RosterService struct {
	store      rosterStore
	parser     workbookParser
	normalizer *roster.Normalizer
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(store rosterStore, parser workbookParser, normalizer *roster.Normalizer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = roster.NewNormalizer()
	}
	return &RosterService{store: store, parser: parser, normalizer: normalizer, validator: validate, metrics: metrics, logger: logger}
}

// Ingest parses an uploaded workbook, normalizes and classifies every row
// with the active thresholds and swaps the whole session roster. A workbook
// that cannot be parsed rejects the upload as a whole.
func (s *RosterService) Ingest(filename string, data []byte) (*dto.RosterResponse, error) {
	rows, err := s.parser.Parse(data)
	if err != nil {
		s.logger.Warn("workbook rejected", zap.String("file", filename), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidWorkbook.Code, appErrors.ErrInvalidWorkbook.Status, appErrors.ErrInvalidWorkbook.Message)
	}

	thresholds := s.store.Thresholds()
	students := s.normalizer.Normalize(rows, thresholds)
	s.store.Replace(students, filename)

	discarded := len(rows) - len(students)
	if s.metrics != nil {
		s.metrics.ObserveIngest(len(students), discarded)
	}
	s.logger.Info("roster ingested",
		zap.String("file", filename),
		zap.Int("rows", len(rows)),
		zap.Int("records", len(students)),
		zap.Int("discarded", discarded),
	)

	return s.snapshot(), nil
}

// Roster returns the current session view.
func (s *RosterService) Roster() *dto.RosterResponse {
	return s.snapshot()
}

// Add creates an operator-entered record at the end of the roster.
func (s *RosterService) Add(req dto.SaveStudentRequest) (*models.Student, error) {
	if err := s.validateSave(req); err != nil {
		return nil, err
	}

	index := len(s.store.List())
	student := s.buildRecord(req, roster.RecordID(strings.TrimSpace(req.Email), strings.TrimSpace(req.Name), time.Now().UnixMilli(), index))
	s.store.Append(student)
	return &student, nil
}

// Edit replaces the record with the given ID wholesale.
func (s *RosterService) Edit(id string, req dto.SaveStudentRequest) (*models.Student, error) {
	if err := s.validateSave(req); err != nil {
		return nil, err
	}
	if _, ok := s.store.Get(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	student := s.buildRecord(req, id)
	if !s.store.Update(student) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &student, nil
}

// Thresholds returns the active classifier thresholds.
func (s *RosterService) Thresholds() models.Thresholds {
	return s.store.Thresholds()
}

// UpdateThresholds swaps the thresholds and atomically re-derives every
// record's status. No ordering constraint is enforced between the two
// values; the source tool accepted an inverted pair and so do we.
func (s *RosterService) UpdateThresholds(req dto.ThresholdsRequest) *dto.RosterResponse {
	thresholds := models.Thresholds{NoProgress: req.NoProgress, InProgress: req.InProgress}
	s.store.SetThresholds(thresholds)
	s.logger.Info("thresholds updated",
		zap.Int("no_progress", thresholds.NoProgress),
		zap.Int("in_progress", thresholds.InProgress),
	)
	return s.snapshot()
}

// Reset discards the whole session.
func (s *RosterService) Reset() {
	s.store.Reset()
	s.logger.Info("session reset")
}

func (s *RosterService) validateSave(req dto.SaveStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Email) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "a student needs at least a name or an email")
	}
	return nil
}

// buildRecord applies the same defaulting as ingest and recomputes the
// status; it never trusts a client-supplied status. An all-whitespace ocs3
// is deleted before save so its presence keeps toggling the third session
// column downstream.
func (s *RosterService) buildRecord(req dto.SaveStudentRequest, id string) models.Student {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = roster.MissingValue
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = roster.MissingValue
	}

	student := models.Student{
		ID:                id,
		Name:              name,
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		CompletedChapters: req.CompletedChapters,
		TotalChapters:     req.TotalChapters,
		Marks:             req.Marks,
		MaxMarks:          req.MaxMarks,
		Skipped:           req.Skipped,
		OCS1:              fallback(strings.TrimSpace(req.OCS1), roster.MissingValue),
		OCS2:              fallback(strings.TrimSpace(req.OCS2), roster.MissingValue),
		Status:            roster.Classify(req.CompletedChapters, s.store.Thresholds()),
	}

	if req.OCS3 != nil {
		if trimmed := strings.TrimSpace(*req.OCS3); trimmed != "" {
			student.OCS3 = &trimmed
		}
	}

	return student
}

func (s *RosterService) snapshot() *dto.RosterResponse {
	students := s.store.List()
	hasOCS3 := false
	for _, st := range students {
		if st.OCS3 != nil {
			hasOCS3 = true
			break
		}
	}
	return &dto.RosterResponse{
		Students:   students,
		Thresholds: s.store.Thresholds(),
		SourceFile: s.store.SourceFile(),
		HasOCS3:    hasOCS3,
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
