package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/internal/sheet"
)

// Column names the normalizer looks up through the fuzzy matcher. The
// "TotalChapers" typo is deliberate: it is the primary header the source
// spreadsheets actually carry.
const (
	colName            = "Name"
	colEmail           = "Email"
	colPhone           = "Phone"
	colCompleted       = "CompletedChapters"
	colTotalPrimary    = "TotalChapers"
	colTotalAlternate  = "Total Chapters"
	colMarks           = "Marks"
	colMaxMarks        = "MaxMarks"
	colSkipped         = "Skipped"
	colOCS1            = "OCS1"
	colOCS2            = "OCS2"
	colOCS3            = "OCS3"
	MissingValue       = "N/A"
	defaultTotalChapts = 1
)

// Normalizer converts raw sheet rows into classified roster records. It is
// deterministic given the same rows, thresholds and clock.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer builds a normalizer on the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerAt pins the clock, which fixes the generated IDs.
func NewNormalizerAt(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize produces one Student per usable row, preserving input order.
// A row missing both name and email cannot represent a student and is
// silently dropped; every other missing field is defaulted, never rejected.
func (n *Normalizer) Normalize(rows []*sheet.Row, thresholds models.Thresholds) []models.Student {
	millis := n.now().UnixMilli()
	students := make([]models.Student, 0, len(rows))

	for i, row := range rows {
		name := row.String(colName, "")
		email := row.String(colEmail, "")
		if name == "" && email == "" {
			continue
		}

		completed := row.Int(colCompleted)

		// Fallback policy for total chapters: a primary value of zero,
		// whether explicit or defaulted from a missing column, switches to
		// the alternate header, which itself defaults to 1. An explicitly
		// entered zero is therefore indistinguishable from an absent column;
		// that quirk is kept for compatibility.
		total := row.Int(colTotalPrimary)
		if total == 0 {
			total = row.Int(colTotalAlternate)
			if total == 0 {
				total = defaultTotalChapts
			}
		}

		student := models.Student{
			ID:                RecordID(email, name, millis, i),
			Name:              orDefault(name),
			Email:             orDefault(email),
			Phone:             row.String(colPhone, ""),
			CompletedChapters: completed,
			TotalChapters:     total,
			Marks:             row.Int(colMarks),
			MaxMarks:          row.Int(colMaxMarks),
			Skipped:           row.Int(colSkipped),
			OCS1:              row.String(colOCS1, MissingValue),
			OCS2:              row.String(colOCS2, MissingValue),
			Status:            Classify(completed, thresholds),
		}

		if raw, ok := row.Lookup(colOCS3); ok {
			ocs3 := strings.TrimSpace(raw)
			student.OCS3 = &ocs3
		}

		students = append(students, student)
	}

	return students
}

// RecordID is unique enough for a session: contact, ingestion time, row
// position. It is not stable across re-uploads of the same file.
func RecordID(email, name string, millis int64, index int) string {
	base := email
	if base == "" {
		base = name
	}
	return fmt.Sprintf("%s-%d-%d", base, millis, index)
}

func orDefault(v string) string {
	if v == "" {
		return MissingValue
	}
	return v
}
