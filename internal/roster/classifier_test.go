package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medtrain/progress-tracker-api/internal/models"
)

func TestClassify(t *testing.T) {
	thresholds := models.Thresholds{NoProgress: 4, InProgress: 10}

	cases := []struct {
		name      string
		completed int
		want      models.Status
	}{
		{"zero", 0, models.StatusNoProgress},
		{"just below no progress", 3, models.StatusNoProgress},
		{"at no progress boundary", 4, models.StatusInProgress},
		{"just below in progress", 9, models.StatusInProgress},
		{"at in progress boundary", 10, models.StatusCompleted},
		{"well above", 40, models.StatusCompleted},
		{"negative", -1, models.StatusNoProgress},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.completed, thresholds))
		})
	}
}

func TestClassifyInvertedThresholds(t *testing.T) {
	// With NoProgress above InProgress the middle branch is unreachable.
	thresholds := models.Thresholds{NoProgress: 10, InProgress: 4}

	assert.Equal(t, models.StatusNoProgress, Classify(9, thresholds))
	assert.Equal(t, models.StatusCompleted, Classify(10, thresholds))
}

func TestReclassify(t *testing.T) {
	students := []models.Student{
		{ID: "a", CompletedChapters: 3, Status: models.StatusNoProgress},
		{ID: "b", CompletedChapters: 7, Status: models.StatusInProgress},
		{ID: "c", CompletedChapters: 12, Status: models.StatusCompleted},
	}

	out := Reclassify(students, models.Thresholds{NoProgress: 8, InProgress: 20})

	assert.Equal(t, models.StatusNoProgress, out[0].Status)
	assert.Equal(t, models.StatusNoProgress, out[1].Status)
	assert.Equal(t, models.StatusInProgress, out[2].Status)

	// Input untouched.
	assert.Equal(t, models.StatusInProgress, students[1].Status)
	assert.Equal(t, models.StatusCompleted, students[2].Status)
}

func TestReclassifyIdempotent(t *testing.T) {
	thresholds := models.Thresholds{NoProgress: 4, InProgress: 10}
	students := []models.Student{
		{ID: "a", CompletedChapters: 2},
		{ID: "b", CompletedChapters: 11},
	}

	once := Reclassify(students, thresholds)
	twice := Reclassify(once, thresholds)
	assert.Equal(t, once, twice)
}
