package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/pkg/config"
)

func testComposer() *EmailComposer {
	return NewEmailComposer(config.MailConfig{
		FromName:     "MedTrain Team",
		SupportPhone: "7975764489",
		ReportPeriod: "August 2025",
	})
}

func samplePayload() models.ReportPayload {
	return models.ReportPayload{
		Name:              "Asha",
		Email:             "asha@med-train.com",
		ChapterCompletion: "7/24",
		Marks:             55,
		MaxMarks:          80,
		OCS1Date:          "02/08/2025",
		OCS2Date:          "16/08/2025",
		OCS1Status:        "Attended",
		OCS2Status:        "Attended",
		Status:            models.StatusInProgress,
	}
}

func TestComposeSubjectAndAddress(t *testing.T) {
	msg, err := testComposer().Compose(samplePayload())
	require.NoError(t, err)

	assert.Equal(t, "Your Learners Report - AUGUST 2025", msg.Subject)
	assert.Equal(t, "Asha", msg.ToName)
	assert.Equal(t, "asha@med-train.com", msg.ToAddr)
}

func TestComposeBody(t *testing.T) {
	msg, err := testComposer().Compose(samplePayload())
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "Dear Asha")
	assert.Contains(t, msg.HTML, "month of August 2025")
	assert.Contains(t, msg.HTML, "<b>Chapter Completion:</b> 7/24")
	assert.Contains(t, msg.HTML, "<b>Assessment:</b> 55/80")
	assert.Contains(t, msg.HTML, "OCS 1 (02/08/2025)")
	assert.Contains(t, msg.HTML, "OCS 2 (16/08/2025)")
	assert.Contains(t, msg.HTML, "7975764489")
	assert.Contains(t, msg.HTML, "MedTrain Team")
	assert.NotContains(t, msg.HTML, "mandatory and essential")
}

func TestComposeAttendanceReminder(t *testing.T) {
	cases := []struct {
		name string
		ocs1 string
		ocs2 string
		want bool
	}{
		{"both attended", "Attended", "Attended", false},
		{"first missed", "Not Attended", "Attended", true},
		{"second missed", "Attended", "not attended", true},
		{"padded marker", "Attended", "  NOT ATTENDED ", true},
		{"not applicable", "N/A", "N/A", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := samplePayload()
			p.OCS1Status = tc.ocs1
			p.OCS2Status = tc.ocs2

			msg, err := testComposer().Compose(p)
			require.NoError(t, err)

			if tc.want {
				assert.Contains(t, msg.HTML, "attend all the Online-Contact-Sessions")
			} else {
				assert.NotContains(t, msg.HTML, "attend all the Online-Contact-Sessions")
			}
		})
	}
}

func TestComposeStatusMessage(t *testing.T) {
	p := samplePayload()
	p.Status = models.StatusCompleted

	msg, err := testComposer().Compose(p)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "<b>Status:</b> Completed")
	assert.Contains(t, msg.HTML, "Congratulations")

	p.Status = models.StatusNoProgress
	msg, err = testComposer().Compose(p)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "expedite the completion")
}

func TestComposeBlankDates(t *testing.T) {
	p := samplePayload()
	p.OCS1Date = ""
	p.OCS2Date = "  "

	msg, err := testComposer().Compose(p)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "OCS 1 (N/A)")
	assert.Contains(t, msg.HTML, "OCS 2 (N/A)")
}
