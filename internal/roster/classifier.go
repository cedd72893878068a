package roster

import "github.com/medtrain/progress-tracker-api/internal/models"

// Classify derives the progress status from a completed-chapter count.
// Ordered, first match wins; with an inverted threshold pair the middle
// branch can be unreachable, which matches the source tool.
func Classify(completed int, t models.Thresholds) models.Status {
	if completed < t.NoProgress {
		return models.StatusNoProgress
	}
	if completed < t.InProgress {
		return models.StatusInProgress
	}
	return models.StatusCompleted
}

// Reclassify re-derives every record's status against new thresholds without
// touching any other field. It is a pure re-projection: the input slice is
// not mutated.
func Reclassify(students []models.Student, t models.Thresholds) []models.Student {
	out := make([]models.Student, len(students))
	for i, s := range students {
		s.Status = Classify(s.CompletedChapters, t)
		out[i] = s
	}
	return out
}
