package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/medtrain/progress-tracker-api/pkg/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender delivers messages through the Sendgrid v3 API.
type SendgridSender struct {
	key  string
	from *sgmail.Email
}

var _ Sender = (*SendgridSender)(nil)

// NewSendgridSender builds a sender with the deployment's fixed identity.
func NewSendgridSender(cfg config.MailConfig) *SendgridSender {
	return &SendgridSender{
		key:  cfg.SendgridKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

// Send delivers one HTML message to a single recipient.
func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddr))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", msg.HTML))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
