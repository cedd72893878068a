package models

// Status is the coarse progress classification derived from completed
// chapters. It is never read from the spreadsheet.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
	StatusNoProgress Status = "No Progress"
)

// Thresholds configures the classifier cut-offs. The source tool never
// validated noProgress <= inProgress and neither do we; with an inverted pair
// the In Progress branch is simply unreachable for some counts.
type Thresholds struct {
	NoProgress int `json:"no_progress"`
	InProgress int `json:"in_progress"`
}

// Student is one normalized roster entry for the current session. Records are
// replaced wholesale on edit and discarded on reset; they never survive the
// process.
type Student struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone,omitempty"`
	CompletedChapters int     `json:"completed_chapters"`
	TotalChapters     int     `json:"total_chapters"`
	Marks             int     `json:"marks"`
	MaxMarks          int     `json:"max_marks"`
	Skipped           int     `json:"skipped"`
	OCS1              string  `json:"ocs1"`
	OCS2              string  `json:"ocs2"`
	OCS3              *string `json:"ocs3,omitempty"`
	Status            Status  `json:"status"`
}

// HasPhone reports whether the record qualifies for the WhatsApp channel.
func (s Student) HasPhone() bool {
	return s.Phone != ""
}

// OCSDates carries the operator-entered session dates. They live outside the
// records because they apply to the whole roster.
type OCSDates struct {
	OCS1 string `json:"ocs1"`
	OCS2 string `json:"ocs2"`
	OCS3 string `json:"ocs3,omitempty"`
}
