package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/pkg/config"
	"github.com/medtrain/progress-tracker-api/pkg/mail"
)

// notAttended is the marker that triggers the mandatory-attendance reminder,
// compared case-insensitively after trimming.
const notAttended = "not attended"

var statusMessages = map[models.Status]string{
	models.StatusCompleted:  "Congratulations, we sincerely appreciate the dedication you have shown in completing the courses. We encourage you to continue with your efforts.",
	models.StatusInProgress: "We appreciate the effort you are putting in, and we kindly request you to expedite the completion of the lectures within the allocated timeframe. We would like to hear about any difficulties or challenges you may be facing.",
	models.StatusNoProgress: "We appreciate the effort you are putting in, and we kindly request you to expedite the completion of the lectures within the allocated timeframe. We would like to hear about any difficulties or challenges you may be facing.",
}

var bodyTemplate = template.Must(template.New("report").Parse(`<h3>Dear {{.Name}},</h3>
<br>
<p>Greetings from MedTrain - Allergy Asthma Specialist Course.</p>
<p>Please find the below-mentioned table of your progress for the month of {{.Period}}.</p>
<p><b>Chapter Completion:</b> {{.ChapterCompletion}}</p>
<p><b>Assessment:</b> {{.Marks}}/{{.MaxMarks}}</p>
<p><b>OCS 1 ({{.OCS1Date}}):</b> {{.OCS1Status}}</p>
<p><b>OCS 2 ({{.OCS2Date}}):</b> {{.OCS2Status}}</p>
{{- if .AttendanceReminder}}
<p>Kindly request you to attend all the Online-Contact-Sessions which is a mandatory and essential part of your course.</p>
{{- end}}
<p><b>Status:</b> {{.Status}}</p>
<p>{{.StatusMessage}}</p>
<p>For Technical and Academic challenges please contact - {{.SupportPhone}}.</p>
<p>Note: We request you to rename yourself to your registered name during online sessions to ensure your attendance is marked correctly.</p>
<p><b>Note</b>:<li>Step 1 | Finish Viewing the Video on your Media Player.</li>
<li>Step 2 | Click on the "Complete &amp; Continue" button located at the Bottom Right of the media player. (On some devices, you might find this option under the 3 dots Menu button at the Top Right of the media player).</li>
<p>Kindly Ignore the above message if already done.</p>
<br>
<p>Thanks and Regards,</p>
<p>{{.TeamName}}</p>`))

type bodyData struct {
	Name               string
	Period             string
	ChapterCompletion  string
	Marks              int
	MaxMarks           int
	OCS1Date           string
	OCS2Date           string
	OCS1Status         string
	OCS2Status         string
	AttendanceReminder bool
	Status             models.Status
	StatusMessage      string
	SupportPhone       string
	TeamName           string
}

// EmailComposer renders the per-recipient report email. The body layout is
// fixed; only record fields and the deployment identity vary.
type EmailComposer struct {
	teamName     string
	supportPhone string
	period       string
}

// NewEmailComposer builds a composer from the mail configuration.
func NewEmailComposer(cfg config.MailConfig) *EmailComposer {
	return &EmailComposer{
		teamName:     cfg.FromName,
		supportPhone: cfg.SupportPhone,
		period:       cfg.ReportPeriod,
	}
}

// Compose builds the outbound message for one recipient.
func (c *EmailComposer) Compose(p models.ReportPayload) (mail.Message, error) {
	data := bodyData{
		Name:               p.Name,
		Period:             c.period,
		ChapterCompletion:  p.ChapterCompletion,
		Marks:              p.Marks,
		MaxMarks:           p.MaxMarks,
		OCS1Date:           dateOrNA(p.OCS1Date),
		OCS2Date:           dateOrNA(p.OCS2Date),
		OCS1Status:         p.OCS1Status,
		OCS2Status:         p.OCS2Status,
		AttendanceReminder: needsReminder(p.OCS1Status) || needsReminder(p.OCS2Status),
		Status:             p.Status,
		StatusMessage:      statusMessages[p.Status],
		SupportPhone:       c.supportPhone,
		TeamName:           c.teamName,
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return mail.Message{}, fmt.Errorf("render report email: %w", err)
	}

	return mail.Message{
		ToName:  p.Name,
		ToAddr:  p.Email,
		Subject: fmt.Sprintf("Your Learners Report - %s", strings.ToUpper(c.period)),
		HTML:    buf.String(),
	}, nil
}

func needsReminder(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), notAttended)
}

func dateOrNA(date string) string {
	if strings.TrimSpace(date) == "" {
		return "N/A"
	}
	return date
}
