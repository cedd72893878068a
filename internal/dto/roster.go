package dto

import "github.com/medtrain/progress-tracker-api/internal/models"

// RosterResponse is the full session view returned after uploads and reads.
type RosterResponse struct {
	Students   []models.Student  `json:"students"`
	Thresholds models.Thresholds `json:"thresholds"`
	SourceFile string            `json:"source_file,omitempty"`
	HasOCS3    bool              `json:"has_ocs3"`
}

// SaveStudentRequest covers both the add and the full-record edit paths. At
// least one of name or email must be present, mirroring the ingest discard
// rule.
type SaveStudentRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	CompletedChapters int     `json:"completed_chapters" validate:"gte=0"`
	TotalChapters     int     `json:"total_chapters" validate:"gte=0"`
	Marks             int     `json:"marks" validate:"gte=0"`
	MaxMarks          int     `json:"max_marks" validate:"gte=0"`
	Skipped           int     `json:"skipped" validate:"gte=0"`
	OCS1              string  `json:"ocs1"`
	OCS2              string  `json:"ocs2"`
	OCS3              *string `json:"ocs3"`
}

// ThresholdsRequest replaces the classifier thresholds. Ordering is not
// validated; an inverted pair is accepted as-is.
type ThresholdsRequest struct {
	NoProgress int `json:"no_progress"`
	InProgress int `json:"in_progress"`
}
